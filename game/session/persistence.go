package session

import (
	"time"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(sess *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// The board is stored in full; the level is restored from the pack by ID.
type PersistedSessionData struct {
	ID             string       `json:"id"`
	PackID         string       `json:"pack_id"`
	LevelID        int          `json:"level_id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	StartedAt      time.Time    `json:"started_at"`
	Completed      bool         `json:"completed"`
	SolveTimeSecs  float64      `json:"solve_time_secs"`
	Board          *board.Board `json:"board"`
}
