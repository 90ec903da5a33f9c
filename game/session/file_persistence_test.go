package session

import (
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/packs"
)

func newTestPersistence(t *testing.T) *FilePersistence {
	t.Helper()
	packMgr, err := packs.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create pack manager: %v", err)
	}
	fp, err := NewFilePersistence(t.TempDir(), packMgr)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return fp
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	pack := packs.BuiltinTutorialPack()
	sess, err := m.Create("", pack, &pack.Levels[0])
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Mutate the board, then persist.
	sess.Board.Place(board.NewGate(board.KindAndIntro, 3, 4))
	sess.Completed = true
	sess.SolveTimeSecs = 17.25
	if err := m.Save(sess.ID); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if !fp.Exists(sess.ID) {
		t.Fatal("Expected persisted session file to exist")
	}

	// A fresh manager recovers the session from disk.
	m2 := NewManagerWithPersistence(fp)
	loaded, err := m2.Get(sess.ID)
	if err != nil {
		t.Fatalf("Failed to load persisted session: %v", err)
	}
	if loaded.Board.PieceCount() != 4 {
		t.Errorf("Expected 4 pieces on restored board, got %d", loaded.Board.PieceCount())
	}
	if loaded.Level.ID != 1 || loaded.Level.Name != "First Steps" {
		t.Errorf("Expected session rebound to level 1, got %+v", loaded.Level)
	}
	if !loaded.Completed || loaded.SolveTimeSecs != 17.25 {
		t.Errorf("Expected completion data to survive, got %+v", loaded)
	}
}

func TestFilePersistenceListAndDelete(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	pack := packs.BuiltinTutorialPack()
	first, err := m.Create("", pack, &pack.Levels[0])
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	second, err := m.Create("", pack, &pack.Levels[1])
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 persisted sessions, got %d", len(ids))
	}

	if err := m.Delete(first.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if fp.Exists(first.ID) {
		t.Error("Expected session file removed after delete")
	}
	if !fp.Exists(second.ID) {
		t.Error("Expected other session to survive")
	}
}

func TestLoadPersistedSessions(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	pack := packs.BuiltinTutorialPack()
	if _, err := m.Create("", pack, &pack.Levels[0]); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if _, err := m.Create("", pack, &pack.Levels[2]); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	m2 := NewManagerWithPersistence(fp)
	if m2.Count() != 0 {
		t.Fatalf("Expected empty manager before loading, got %d", m2.Count())
	}
	if err := m2.LoadPersistedSessions(); err != nil {
		t.Fatalf("Failed to load persisted sessions: %v", err)
	}
	if m2.Count() != 2 {
		t.Errorf("Expected 2 loaded sessions, got %d", m2.Count())
	}
}
