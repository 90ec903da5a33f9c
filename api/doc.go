// Package api provides HTTP REST API handlers for the ProofGrid server.
//
// The api package implements:
//   - RESTful endpoints for board editing and proof verification
//   - Session management endpoints
//   - Level pack listing and loading
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session {pack_id, level_id}
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Board Operations:
//   - GET /api/sessions/{id}/board - Current board
//   - POST /api/sessions/{id}/pieces - Place a piece
//   - DELETE /api/sessions/{id}/pieces - Remove a piece {x, y}
//   - POST /api/sessions/{id}/pieces/move - Move a piece {from, to}
//   - POST /api/sessions/{id}/reset - Reset board to the level's initial state
//
// Proof Operations:
//   - POST /api/sessions/{id}/validate - Structural validation report
//   - POST /api/sessions/{id}/verify - Attempt proof verification
//   - GET /api/sessions/{id}/proof - Export the proof artifact
//
// Level Packs:
//   - GET /api/packs - List available packs
//   - GET /api/packs/{id} - Get a full pack
//   - GET /api/packs/{id}/levels/{level} - Get one level
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
