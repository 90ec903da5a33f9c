// Package network submits verified proofs to the central ProofGrid server
// and queries the global leaderboard.
//
// Submissions are signed with a SHA-256 digest over the proof's JSON
// encoding concatenated with the player's API key, so the server can detect
// tampered artifacts without a full PKI. The server is authoritative for
// points and ranking; the client only reports.
package network
