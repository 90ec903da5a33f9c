// Package service provides the business logic layer for the ProofGrid server.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Level pack loading and selection
//   - Board editing operations with per-piece validation
//   - Proof verification and export
//
// Core Interfaces:
//
// ProofService is the main service interface providing high-level puzzle
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. PackManager manages level pack loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the board/verification core, providing session isolation and orchestration.
// Each session owns an independent board for one level of one pack.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	packMgr, _ := packs.NewManager("packs")
//	svc := service.NewProofService(sessionMgr, packMgr, verify.New(gophersat.New()))
//
//	info, err := svc.CreateSession(ctx, "tutorial", 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := svc.PlacePiece(ctx, info.ID, board.NewAssumption("P", 2, 5))
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// board state. Multiple sessions can run concurrently over different levels.
// Sessions track creation time, last access time, and solve time.
package service
