package service

import (
	"context"
	"time"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/verify"
)

// ProofService defines all puzzle-related operations
type ProofService interface {
	// Session Management
	CreateSession(ctx context.Context, packID string, levelID int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Board Operations
	GetBoard(ctx context.Context, sessionID string) (*board.Board, error)
	PlacePiece(ctx context.Context, sessionID string, piece board.Piece) (*PlaceResult, error)
	RemovePiece(ctx context.Context, sessionID string, x, y int) (*RemoveResult, error)
	MovePiece(ctx context.Context, sessionID string, from, to board.Position) (*MoveResult, error)
	ResetBoard(ctx context.Context, sessionID string) (*board.Board, error)

	// Proof Operations
	ValidateBoard(ctx context.Context, sessionID string) (*board.Report, error)
	VerifyProof(ctx context.Context, sessionID string) (*VerifyResult, error)
	ExportProof(ctx context.Context, sessionID, playerID string) (*verify.ExportedProof, error)

	// Level Packs
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	LoadPack(ctx context.Context, packID string) (*board.LevelPack, error)
	GetLevel(ctx context.Context, packID string, levelID int) (*board.Level, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, pack *board.LevelPack, level *board.Level) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, pack *board.LevelPack, level *board.Level) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PackManager handles level pack loading
type PackManager interface {
	LoadPack(id string) (*board.LevelPack, error)
	ListPacks() ([]*PackInfo, error)
	GetDefault() *board.LevelPack
	SavePack(id string, pack *board.LevelPack) error
	MarkCompleted(packID string, levelID int, timeSecs float64)
}

// Session represents an active puzzle session. The board starts as a copy of
// the level's initial state and is mutated by the editing operations.
type Session struct {
	ID             string
	PackID         string
	Level          *board.Level
	Board          *board.Board
	CreatedAt      time.Time
	LastAccessedAt time.Time
	StartedAt      time.Time
	Completed      bool
	SolveTimeSecs  float64
}
