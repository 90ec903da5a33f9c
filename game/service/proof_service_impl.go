package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/verify"
)

// ErrNotProven is returned when a proof export is requested before the
// session's level has been verified.
var ErrNotProven = errors.New("level not proven yet")

// proofServiceImpl implements the ProofService interface
type proofServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	verifier *verify.Verifier
	mu       sync.RWMutex
}

// NewProofService creates a new proof service instance
func NewProofService(sessions SessionManager, packs PackManager, verifier *verify.Verifier) ProofService {
	return &proofServiceImpl{
		sessions: sessions,
		packs:    packs,
		verifier: verifier,
	}
}

// CreateSession creates a new puzzle session for a level. An empty packID
// selects the default pack; levelID 0 selects the pack's first level.
func (s *proofServiceImpl) CreateSession(ctx context.Context, packID string, levelID int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pack, err := s.resolvePack(packID)
	if err != nil {
		return nil, err
	}

	var level *board.Level
	if levelID == 0 {
		level = &pack.Levels[0]
	} else {
		level = pack.LevelByID(levelID)
		if level == nil {
			return nil, fmt.Errorf("level %d not found in pack '%s'", levelID, pack.ID)
		}
	}

	// Let the session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", pack, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *proofServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *proofServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *proofServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// GetBoard returns the current board for a session
func (s *proofServiceImpl) GetBoard(ctx context.Context, sessionID string) (*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Board, nil
}

// PlacePiece validates and places a piece on the session's board
func (s *proofServiceImpl) PlacePiece(ctx context.Context, sessionID string, piece board.Piece) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if verr := board.ValidatePlacement(sess.Board, piece); verr != nil {
		return &PlaceResult{Success: false, Error: verr, Board: sess.Board}, nil
	}

	sess.Board.Place(piece)
	result := &PlaceResult{
		Success: true,
		Board:   sess.Board,
		Events: []GameEvent{{
			Type:      "place",
			Message:   fmt.Sprintf("Placed %s at (%d,%d)", piece.Kind, piece.Position.X, piece.Position.Y),
			Timestamp: time.Now(),
			Position:  &piece.Position,
		}},
	}

	s.autoSave(sessionID, "place")
	return result, nil
}

// RemovePiece removes the piece at (x, y) from the session's board
func (s *proofServiceImpl) RemovePiece(ctx context.Context, sessionID string, x, y int) (*RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	removed, ok := sess.Board.Remove(x, y)
	result := &RemoveResult{Success: ok, Board: sess.Board}
	if ok {
		result.Removed = &removed
		s.autoSave(sessionID, "remove")
	}
	return result, nil
}

// MovePiece relocates a piece on the session's board
func (s *proofServiceImpl) MovePiece(ctx context.Context, sessionID string, from, to board.Position) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if !sess.Board.Move(from, to) {
		return &MoveResult{
			Success: false,
			Message: fmt.Sprintf("cannot move (%d,%d) to (%d,%d)", from.X, from.Y, to.X, to.Y),
			Board:   sess.Board,
		}, nil
	}

	s.autoSave(sessionID, "move")
	return &MoveResult{Success: true, Board: sess.Board}, nil
}

// ResetBoard restores the session's board to the level's initial state
func (s *proofServiceImpl) ResetBoard(ctx context.Context, sessionID string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Board = sess.Level.InitialState.Clone()
	sess.StartedAt = time.Now()
	sess.Completed = false
	sess.SolveTimeSecs = 0

	s.autoSave(sessionID, "reset")
	return sess.Board, nil
}

// ValidateBoard runs structural validation over the session's board
func (s *proofServiceImpl) ValidateBoard(ctx context.Context, sessionID string) (*board.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	report := board.ValidateBoard(sess.Board)
	return &report, nil
}

// VerifyProof attempts to verify the session's board as a proof of its
// level's goal. A structurally unready board is reported, not verified.
// Verification itself never mutates the board; the first success marks the
// session completed and records the solve time.
func (s *proofServiceImpl) VerifyProof(ctx context.Context, sessionID string) (*VerifyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	report := board.ValidateBoard(sess.Board)
	result := &VerifyResult{Report: report}

	if !board.ReadyForVerification(sess.Board) {
		result.Message = "board is not ready for verification"
		return result, nil
	}
	result.Ready = true

	proven := s.verifier.Verify(ctx, sess.Level, sess.Board.Pieces)
	result.Proven = proven
	if !proven {
		result.Message = "not a valid proof yet"
		return result, nil
	}

	if !sess.Completed {
		sess.Completed = true
		sess.SolveTimeSecs = time.Since(sess.StartedAt).Seconds()
		s.packs.MarkCompleted(sess.PackID, sess.Level.ID, sess.SolveTimeSecs)
	}
	result.ElapsedSecs = sess.SolveTimeSecs
	result.Message = fmt.Sprintf("Proven: %s", sess.Level.Theorem)
	proof := verify.ExportProof(sess.Level, sess.Board, "", sess.SolveTimeSecs)
	result.Proof = &proof
	result.Events = []GameEvent{{
		Type:      "proven",
		Message:   fmt.Sprintf("Level %d proven in %.1fs", sess.Level.ID, sess.SolveTimeSecs),
		Timestamp: time.Now(),
	}}

	s.autoSave(sessionID, "verify")
	return result, nil
}

// ExportProof builds the submission artifact for a solved session
func (s *proofServiceImpl) ExportProof(ctx context.Context, sessionID, playerID string) (*verify.ExportedProof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if !sess.Completed {
		return nil, ErrNotProven
	}

	proof := verify.ExportProof(sess.Level, sess.Board, playerID, sess.SolveTimeSecs)
	return &proof, nil
}

// ListPacks returns available level packs
func (s *proofServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	return s.packs.ListPacks()
}

// LoadPack loads a specific level pack
func (s *proofServiceImpl) LoadPack(ctx context.Context, packID string) (*board.LevelPack, error) {
	return s.resolvePack(packID)
}

// GetLevel returns one level of a pack
func (s *proofServiceImpl) GetLevel(ctx context.Context, packID string, levelID int) (*board.Level, error) {
	pack, err := s.resolvePack(packID)
	if err != nil {
		return nil, err
	}
	level := pack.LevelByID(levelID)
	if level == nil {
		return nil, fmt.Errorf("level %d not found in pack '%s'", levelID, pack.ID)
	}
	return level, nil
}

// resolvePack loads a pack by ID, falling back to the default for an empty
// ID. A missing pack error lists the available pack IDs.
func (s *proofServiceImpl) resolvePack(packID string) (*board.LevelPack, error) {
	if packID == "" {
		return s.packs.GetDefault(), nil
	}
	pack, err := s.packs.LoadPack(packID)
	if err != nil {
		available, listErr := s.packs.ListPacks()
		if listErr == nil && len(available) > 0 {
			var ids []string
			for _, p := range available {
				ids = append(ids, p.PackID)
			}
			return nil, fmt.Errorf("pack '%s' not found. Available packs: %v", packID, ids)
		}
		return nil, fmt.Errorf("failed to load pack %s: %w", packID, err)
	}
	return pack, nil
}

func (s *proofServiceImpl) autoSave(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sessionID, op, err)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PackID:         sess.PackID,
		LevelID:        sess.Level.ID,
		LevelName:      sess.Level.Name,
		Theorem:        sess.Level.Theorem,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Board:          sess.Board,
		Completed:      sess.Completed,
		SolveTimeSecs:  sess.SolveTimeSecs,
	}
}
