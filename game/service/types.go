package service

import (
	"time"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/verify"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string       `json:"id"`
	PackID         string       `json:"pack_id"`
	LevelID        int          `json:"level_id"`
	LevelName      string       `json:"level_name"`
	Theorem        string       `json:"theorem"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Board          *board.Board `json:"board"`
	Completed      bool         `json:"completed"`
	SolveTimeSecs  float64      `json:"solve_time_secs,omitempty"`
}

// PlaceResult contains the result of a piece placement
type PlaceResult struct {
	Success bool                   `json:"success"`
	Error   *board.ValidationError `json:"error,omitempty"`
	Board   *board.Board           `json:"board"`
	Events  []GameEvent            `json:"events,omitempty"`
}

// RemoveResult contains the result of a piece removal
type RemoveResult struct {
	Success bool         `json:"success"`
	Removed *board.Piece `json:"removed,omitempty"`
	Board   *board.Board `json:"board"`
}

// MoveResult contains the result of a piece move
type MoveResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Board   *board.Board `json:"board"`
}

// VerifyResult contains the outcome of a verification attempt. Proven is the
// single boolean verdict; Ready distinguishes "not yet solved" from "board
// not structurally ready". Proof is set only on the first successful attempt.
type VerifyResult struct {
	Proven      bool                  `json:"proven"`
	Ready       bool                  `json:"ready"`
	Report      board.Report          `json:"report"`
	Message     string                `json:"message"`
	ElapsedSecs float64               `json:"elapsed_secs,omitempty"`
	Proof       *verify.ExportedProof `json:"proof,omitempty"`
	Events      []GameEvent           `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during a session
type GameEvent struct {
	Type      string          `json:"type"` // "place", "remove", "move", "reset", "proven"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  *board.Position `json:"position,omitempty"`
}

// PackInfo provides information about a level pack
type PackInfo struct {
	Filename    string `json:"filename,omitempty"`
	PackID      string `json:"pack_id"` // The identifier to use for session creation
	Name        string `json:"name"`    // Display name
	Author      string `json:"author,omitempty"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty"`
	LevelCount  int    `json:"level_count"`
}
