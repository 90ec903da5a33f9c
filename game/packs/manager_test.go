package packs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
)

func createTestPack() *board.LevelPack {
	b := board.New(10, 10)
	b.Place(board.NewAssumption("P", 2, 5))
	b.Place(board.NewGoal("R", 8, 4))
	return &board.LevelPack{
		ID:          "custom",
		Name:        "Custom Pack",
		Author:      "tester",
		Description: "pack for tests",
		Version:     "1.0.0",
		Difficulty:  2,
		Levels: []board.Level{
			{
				ID:           1,
				Name:         "only level",
				InitialState: *b,
				Goal:         board.GoalCondition{Kind: board.GoalProveFormula, Formula: "R"},
			},
		},
	}
}

func TestNewManagerProvidesBuiltinPack(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	pack := m.GetDefault()
	if pack == nil {
		t.Fatal("Expected a default pack")
	}
	if pack.ID != "tutorial" {
		t.Errorf("Expected tutorial pack, got %q", pack.ID)
	}
	if len(pack.Levels) != 4 {
		t.Errorf("Expected 4 tutorial levels, got %d", len(pack.Levels))
	}

	loaded, err := m.LoadPack("tutorial")
	if err != nil {
		t.Fatalf("Failed to load builtin pack: %v", err)
	}
	if loaded.Levels[0].Name != "First Steps" {
		t.Errorf("Unexpected first level: %q", loaded.Levels[0].Name)
	}
}

func TestLoadPackNotFound(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := m.LoadPack("nope"); err != ErrPackNotFound {
		t.Errorf("Expected ErrPackNotFound, got %v", err)
	}
}

func TestSaveAndLoadPack(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	pack := createTestPack()
	if err := m.SavePack(pack.ID, pack); err != nil {
		t.Fatalf("Failed to save pack: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
		t.Errorf("Expected pack file on disk: %v", err)
	}

	// Fresh manager reads it back from disk.
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create second manager: %v", err)
	}
	loaded, err := m2.LoadPack("custom")
	if err != nil {
		t.Fatalf("Failed to load saved pack: %v", err)
	}
	if loaded.Name != pack.Name || len(loaded.Levels) != 1 {
		t.Errorf("Round trip changed the pack: %+v", loaded)
	}
	if loaded.Levels[0].InitialState.PieceCount() != 2 {
		t.Errorf("Expected 2 pieces in loaded level, got %d", loaded.Levels[0].InitialState.PieceCount())
	}
}

func TestSavePackRejectsInvalid(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	pack := createTestPack()
	pack.Levels = nil
	if err := m.SavePack(pack.ID, pack); err == nil {
		t.Error("Expected an error for a pack with no levels")
	}
}

func TestListPacks(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	infos, err := m.ListPacks()
	if err != nil {
		t.Fatalf("Failed to list packs: %v", err)
	}
	if len(infos) != 1 || infos[0].PackID != "tutorial" {
		t.Errorf("Expected only the builtin pack, got %+v", infos)
	}

	if err := m.SavePack("custom", createTestPack()); err != nil {
		t.Fatalf("Failed to save pack: %v", err)
	}
	// Unparseable files are skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("Failed to write broken pack: %v", err)
	}

	infos, err = m.ListPacks()
	if err != nil {
		t.Fatalf("Failed to list packs: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 packs, got %d", len(infos))
	}
	if infos[1].LevelCount != 1 {
		t.Errorf("Expected level count 1, got %d", infos[1].LevelCount)
	}
}

func TestProgressTracking(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if m.IsLevelCompleted("tutorial", 1) {
		t.Error("Expected level 1 to start uncompleted")
	}

	m.MarkCompleted("tutorial", 1, 30)
	m.MarkCompleted("tutorial", 1, 12.5)
	m.MarkCompleted("tutorial", 1, 60)

	if !m.IsLevelCompleted("tutorial", 1) {
		t.Error("Expected level 1 to be completed")
	}
	progress := m.Progress("tutorial")
	if progress == nil {
		t.Fatal("Expected progress for tutorial pack")
	}
	completion := progress.Completed[1]
	if completion.TimesCompleted != 3 {
		t.Errorf("Expected 3 completions, got %d", completion.TimesCompleted)
	}
	if completion.BestTimeSecs != 12.5 {
		t.Errorf("Expected best time 12.5, got %v", completion.BestTimeSecs)
	}

	// Persist and reload.
	progressPath := filepath.Join(dir, "progress.json")
	if err := m.SaveProgress(progressPath); err != nil {
		t.Fatalf("Failed to save progress: %v", err)
	}

	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create second manager: %v", err)
	}
	if err := m2.LoadProgress(progressPath); err != nil {
		t.Fatalf("Failed to load progress: %v", err)
	}
	if !m2.IsLevelCompleted("tutorial", 1) {
		t.Error("Expected reloaded progress to show completion")
	}

	// Missing progress file is fine.
	if err := m2.LoadProgress(filepath.Join(dir, "missing.json")); err != nil {
		t.Errorf("Expected missing progress file to be ignored, got %v", err)
	}
}
