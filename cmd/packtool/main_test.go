package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
)

func writePack(t *testing.T, dir, name string, pack *board.LevelPack) string {
	t.Helper()

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal pack: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write pack file: %v", err)
	}
	return path
}

func samplePack() *board.LevelPack {
	b := board.New(10, 10)
	b.Place(board.NewAssumption("P", 2, 5))
	b.Place(board.NewAssumption("Q", 2, 3))
	b.Place(board.NewGoal("R", 8, 4))

	return &board.LevelPack{
		ID:          "sample",
		Name:        "Sample Pack",
		Author:      "tester",
		Description: "A pack for tool tests",
		Version:     "1.0",
		Difficulty:  2,
		Levels: []board.Level{
			{
				ID:           1,
				Name:         "Only Level",
				Description:  "Prove R from P and Q",
				Theorem:      "(assert (=> (and P Q) R))",
				InitialState: *b,
				Goal:         board.GoalCondition{Kind: board.GoalProveFormula, Formula: "R"},
			},
		},
	}
}

func TestValidatePackFile(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "sample.json", samplePack())

	valid, lines := validatePackFile(path)
	if !valid {
		t.Fatalf("Expected valid pack, got: %v", lines)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Sample Pack") {
		t.Errorf("Missing pack summary in: %s", joined)
	}
}

func TestValidatePackFileRejectsBadPack(t *testing.T) {
	dir := t.TempDir()

	bad := samplePack()
	bad.ID = ""
	path := writePack(t, dir, "bad.json", bad)

	if valid, _ := validatePackFile(path); valid {
		t.Error("Expected pack without an ID to be invalid")
	}
}

func TestValidatePackFileReportsLevelErrors(t *testing.T) {
	dir := t.TempDir()

	pack := samplePack()
	// Push a piece out of bounds.
	pack.Levels[0].InitialState.Pieces[0].Position = board.Position{X: 99, Y: 99}
	path := writePack(t, dir, "oob.json", pack)

	valid, lines := validatePackFile(path)
	if valid {
		t.Fatal("Expected out-of-bounds level to be invalid")
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "level 1") {
		t.Errorf("Expected level attribution in: %s", joined)
	}
}

func TestValidatePackFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	valid, lines := validatePackFile(path)
	if valid {
		t.Fatal("Expected invalid JSON to fail validation")
	}
	if len(lines) == 0 || !strings.Contains(lines[0], "invalid JSON") {
		t.Errorf("Expected a JSON error, got: %v", lines)
	}
}

func TestCollectPackFiles(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "a.json", samplePack())
	writePack(t, dir, "b.json", samplePack())

	files, err := collectPackFiles([]string{dir})
	if err != nil {
		t.Fatalf("collectPackFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(files))
	}

	single, err := collectPackFiles([]string{filepath.Join(dir, "a.json")})
	if err != nil {
		t.Fatalf("collectPackFiles failed: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("Expected 1 file, got %d", len(single))
	}
}

func TestFindLevel(t *testing.T) {
	pack := samplePack()

	lvl, err := findLevel(pack, 1)
	if err != nil {
		t.Fatalf("findLevel failed: %v", err)
	}
	if lvl.Name != "Only Level" {
		t.Errorf("Unexpected level: %q", lvl.Name)
	}

	_, err = findLevel(pack, 99)
	if err == nil {
		t.Fatal("Expected an error for a missing level")
	}
	if !strings.Contains(err.Error(), "available: 1") {
		t.Errorf("Expected available IDs in error, got: %v", err)
	}
}

func TestRenderBoard(t *testing.T) {
	pack := samplePack()
	out := renderBoard(&pack.Levels[0].InitialState)

	if !strings.Contains(out, "Board 10x10 (3 pieces)") {
		t.Errorf("Missing header in:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	// Row 4 holds the goal at x=8, rows 3 and 5 hold the assumptions at x=2.
	if lines[1+4][8] != 'G' {
		t.Errorf("Expected goal marker, got row %q", lines[1+4])
	}
	if lines[1+5][2] != 'A' || lines[1+3][2] != 'A' {
		t.Errorf("Expected assumption markers in rows %q and %q", lines[1+5], lines[1+3])
	}
}
