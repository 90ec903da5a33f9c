package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/verify"
)

// Test doubles for the manager interfaces live here so the service tests
// don't depend on the session and packs packages.

type fakeSessions struct {
	sessions map[string]*Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*Session)}
}

func (f *fakeSessions) Create(id string, pack *board.LevelPack, level *board.Level) (*Session, error) {
	if id == "" {
		id = "s001"
	}
	sess := &Session{
		ID:     id,
		PackID: pack.ID,
		Level:  level,
		Board:  level.InitialState.Clone(),
	}
	f.sessions[id] = sess
	return sess, nil
}

func (f *fakeSessions) Get(id string) (*Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, errNotFound
	}
	return sess, nil
}

func (f *fakeSessions) GetOrCreate(id string, pack *board.LevelPack, level *board.Level) (*Session, error) {
	if sess, ok := f.sessions[id]; ok {
		return sess, nil
	}
	return f.Create(id, pack, level)
}

func (f *fakeSessions) List() []*Session {
	out := make([]*Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out
}

func (f *fakeSessions) Delete(id string) error {
	if _, ok := f.sessions[id]; !ok {
		return errNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessions) UpdateLastAccessed(id string) error { return nil }
func (f *fakeSessions) Save(id string) error               { return nil }

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "session not found" }

type fakePacks struct {
	pack        *board.LevelPack
	completions []string
}

func (f *fakePacks) LoadPack(id string) (*board.LevelPack, error) {
	if id == f.pack.ID {
		return f.pack, nil
	}
	return nil, errNotFound
}

func (f *fakePacks) ListPacks() ([]*PackInfo, error) {
	return []*PackInfo{{PackID: f.pack.ID, Name: f.pack.Name, LevelCount: len(f.pack.Levels)}}, nil
}

func (f *fakePacks) GetDefault() *board.LevelPack { return f.pack }

func (f *fakePacks) SavePack(id string, pack *board.LevelPack) error { return nil }

func (f *fakePacks) MarkCompleted(packID string, levelID int, timeSecs float64) {
	f.completions = append(f.completions, fmt.Sprintf("%s/%d", packID, levelID))
}

type passSolver struct{}

func (passSolver) Check(_ context.Context, _ verify.Query) (verify.SatResult, error) {
	return verify.ResultUnsat, nil
}

func testPack() *board.LevelPack {
	return &board.LevelPack{
		ID:   "tutorial",
		Name: "Tutorial",
		Levels: []board.Level{
			{
				ID:      1,
				Name:    "First Steps",
				Theorem: "(assert (=> (and P Q) R))",
				InitialState: *board.WithPieces(10, 10, []board.Piece{
					board.NewAssumption("P", 2, 5),
					board.NewAssumption("Q", 2, 3),
					board.NewGoal("R", 8, 4),
				}),
				Goal: board.GoalCondition{Kind: board.GoalProveFormula, Formula: "R"},
			},
		},
	}
}

func newTestService() ProofService {
	return NewProofService(newFakeSessions(), &fakePacks{pack: testPack()}, verify.New(passSolver{}))
}

func TestCreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "tutorial", 1)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.LevelID != 1 || info.LevelName != "First Steps" {
		t.Errorf("Unexpected session info: %+v", info)
	}
	if info.Board.PieceCount() != 3 {
		t.Errorf("Expected 3 initial pieces, got %d", info.Board.PieceCount())
	}

	// Empty pack ID and level 0 fall back to the default pack's first level.
	info, err = svc.CreateSession(ctx, "", 0)
	if err != nil {
		t.Fatalf("Failed to create default session: %v", err)
	}
	if info.LevelID != 1 {
		t.Errorf("Expected first level, got %d", info.LevelID)
	}
}

func TestCreateSessionUnknownPack(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateSession(context.Background(), "missing", 1)
	if err == nil {
		t.Fatal("Expected an error for an unknown pack")
	}
}

func TestPlacePiece(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	result, err := svc.PlacePiece(ctx, info.ID, board.NewGate(board.KindAndIntro, 3, 4))
	if err != nil {
		t.Fatalf("Failed to place piece: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected placement to succeed, got %+v", result.Error)
	}
	if result.Board.PieceCount() != 4 {
		t.Errorf("Expected 4 pieces, got %d", result.Board.PieceCount())
	}
	if len(result.Events) != 1 || result.Events[0].Type != "place" {
		t.Errorf("Expected a place event, got %+v", result.Events)
	}

	// Invalid placement is reported, not an error.
	result, err = svc.PlacePiece(ctx, info.ID, board.NewGate(board.KindOrIntro, 3, 4))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success || result.Error == nil || result.Error.Code != board.CodeOverlap {
		t.Errorf("Expected overlap failure, got %+v", result)
	}
}

func TestRemoveAndMovePiece(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	moveResult, err := svc.MovePiece(ctx, info.ID, board.Position{X: 8, Y: 4}, board.Position{X: 5, Y: 4})
	if err != nil {
		t.Fatalf("Failed to move piece: %v", err)
	}
	if !moveResult.Success {
		t.Fatalf("Expected move to succeed: %s", moveResult.Message)
	}

	removeResult, err := svc.RemovePiece(ctx, info.ID, 5, 4)
	if err != nil {
		t.Fatalf("Failed to remove piece: %v", err)
	}
	if !removeResult.Success || removeResult.Removed.Kind != board.KindGoal {
		t.Errorf("Expected removed goal, got %+v", removeResult)
	}

	removeResult, _ = svc.RemovePiece(ctx, info.ID, 5, 4)
	if removeResult.Success {
		t.Error("Expected removal of an empty cell to fail")
	}
}

func TestVerifyProofLifecycle(t *testing.T) {
	packs := &fakePacks{pack: testPack()}
	svc := NewProofService(newFakeSessions(), packs, verify.New(passSolver{}))
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	// Initial board has no gate: structurally ready, but not a proof.
	result, err := svc.VerifyProof(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if result.Proven {
		t.Error("Expected unproven board")
	}
	if !result.Ready {
		t.Error("Expected valid initial board to be ready")
	}

	// Export before proving fails.
	if _, err := svc.ExportProof(ctx, info.ID, "player-1"); err != ErrNotProven {
		t.Errorf("Expected ErrNotProven, got %v", err)
	}

	// Move the goal next to the gate spot and add the AND gate.
	if _, err := svc.MovePiece(ctx, info.ID, board.Position{X: 8, Y: 4}, board.Position{X: 5, Y: 4}); err != nil {
		t.Fatalf("Failed to move goal: %v", err)
	}
	if _, err := svc.PlacePiece(ctx, info.ID, board.NewGate(board.KindAndIntro, 3, 4)); err != nil {
		t.Fatalf("Failed to place gate: %v", err)
	}

	result, err = svc.VerifyProof(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if !result.Proven {
		t.Fatalf("Expected proof to verify: %s", result.Message)
	}
	if result.Proof == nil || result.Proof.LevelID != 1 {
		t.Errorf("Expected exported proof for level 1, got %+v", result.Proof)
	}

	// Export now succeeds and carries the player ID.
	proof, err := svc.ExportProof(ctx, info.ID, "player-1")
	if err != nil {
		t.Fatalf("Failed to export proof: %v", err)
	}
	if proof.PlayerID != "player-1" {
		t.Errorf("Expected player-1, got %q", proof.PlayerID)
	}

	// Verification is idempotent, and completion is recorded only once.
	again, err := svc.VerifyProof(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to verify again: %v", err)
	}
	if !again.Proven {
		t.Error("Expected repeated verification to stay proven")
	}
	if len(packs.completions) != 1 || packs.completions[0] != "tutorial/1" {
		t.Errorf("Expected one recorded completion for tutorial/1, got %v", packs.completions)
	}
}

func TestVerifyProofNotReady(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	// Remove both assumptions: board invalid, not ready.
	svc.RemovePiece(ctx, info.ID, 2, 5)
	svc.RemovePiece(ctx, info.ID, 2, 3)

	result, err := svc.VerifyProof(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if result.Ready || result.Proven {
		t.Errorf("Expected unready result, got %+v", result)
	}
	if result.Report.IsValid {
		t.Error("Expected invalid report without assumptions")
	}
}

func TestResetBoard(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	svc.PlacePiece(ctx, info.ID, board.NewGate(board.KindAndIntro, 3, 4))
	b, err := svc.ResetBoard(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to reset board: %v", err)
	}
	if b.PieceCount() != 3 {
		t.Errorf("Expected reset to restore 3 initial pieces, got %d", b.PieceCount())
	}
}

func TestValidateBoard(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "tutorial", 1)

	report, err := svc.ValidateBoard(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to validate: %v", err)
	}
	if !report.IsValid {
		t.Errorf("Expected valid initial board, got %+v", report.Errors)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "tutorial", 1)
	list, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 session, got %d", len(list))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
}

func TestListPacksAndGetLevel(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	infos, err := svc.ListPacks(ctx)
	if err != nil {
		t.Fatalf("Failed to list packs: %v", err)
	}
	if len(infos) != 1 || infos[0].PackID != "tutorial" {
		t.Errorf("Unexpected packs: %+v", infos)
	}

	level, err := svc.GetLevel(ctx, "tutorial", 1)
	if err != nil {
		t.Fatalf("Failed to get level: %v", err)
	}
	if level.Name != "First Steps" {
		t.Errorf("Unexpected level: %+v", level)
	}

	if _, err := svc.GetLevel(ctx, "tutorial", 99); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
