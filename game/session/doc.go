// Package session provides puzzle session management for the ProofGrid server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional file-based persistence
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns an independent board for one level, plus metadata like
// creation time, last access time, and solve progress.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them with cryptographic randomness. Lookups
// are case-insensitive.
//
// Concurrency:
//
// The session manager is thread-safe. Multiple goroutines can safely create,
// retrieve, and delete sessions simultaneously; mutation of a single
// session's board is serialized by the service layer above.
package session
