// Package mcp provides a Model Context Protocol interface to the ProofGrid
// server.
//
// The MCP client is a thin proxy: every tool call is translated into a REST
// request against the HTTP API, so the MCP surface and the REST surface can
// never disagree about game state. Responses are rendered as compact text
// with an ASCII board view so that agent clients can reason about piece
// placement without parsing JSON.
//
// Tools exposed:
//   - create_session, get_session, list_sessions
//   - board_state, place_piece, remove_piece, move_piece, reset_board
//   - validate_board, verify_proof, export_proof
//   - list_packs, level_info
//   - game_instructions
package mcp
