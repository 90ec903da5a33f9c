// Package websocket provides real-time board updates for the ProofGrid server.
//
// The hub tracks connected clients per session and pushes a message whenever
// the session's board changes or a proof event fires, so spectating clients
// (web UI, tooling) see edits and verification results live. Clients are
// write-only from the server's perspective; incoming frames only keep the
// connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	// after a board mutation:
//	hub.BroadcastBoard(sessionID, board)
//	// after a successful verification:
//	hub.BroadcastEvent(sessionID, "proven", proof)
package websocket
