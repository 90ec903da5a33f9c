package board

import (
	"testing"
)

func createTestBoard() *Board {
	return New(10, 8)
}

func TestPlaceAndOccupancy(t *testing.T) {
	b := createTestBoard()

	if b.IsOccupied(2, 5) {
		t.Error("Expected empty board position to be unoccupied")
	}
	if !b.Place(NewAssumption("P", 2, 5)) {
		t.Fatal("Expected placement on an empty in-bounds cell to succeed")
	}
	if !b.IsOccupied(2, 5) {
		t.Error("Expected position to be occupied after placement")
	}
	if b.PieceCount() != 1 {
		t.Errorf("Expected piece count 1, got %d", b.PieceCount())
	}
}

func TestPlaceRejectsOutOfBounds(t *testing.T) {
	b := createTestBoard()

	cases := []Position{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 10, Y: 0},
		{X: 0, Y: 8},
	}
	for _, pos := range cases {
		if b.Place(NewAssumption("P", pos.X, pos.Y)) {
			t.Errorf("Expected placement at (%d, %d) to fail", pos.X, pos.Y)
		}
	}
	if b.PieceCount() != 0 {
		t.Errorf("Expected board unchanged, got %d pieces", b.PieceCount())
	}
}

func TestPlaceRejectsOverlap(t *testing.T) {
	b := createTestBoard()
	if !b.Place(NewAssumption("P", 3, 3)) {
		t.Fatal("Failed to place first piece")
	}
	if b.Place(NewGoal("R", 3, 3)) {
		t.Error("Expected placement on an occupied cell to fail")
	}
	if b.PieceCount() != 1 {
		t.Errorf("Expected piece count to stay 1, got %d", b.PieceCount())
	}
	if got := b.PieceAt(3, 3); got == nil || got.Kind != KindAssumption {
		t.Error("Expected original piece to survive a rejected placement")
	}
}

func TestRemove(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 1, 1))
	b.Place(NewGoal("R", 2, 2))

	removed, ok := b.Remove(1, 1)
	if !ok {
		t.Fatal("Expected removal of an existing piece to succeed")
	}
	if removed.Kind != KindAssumption || removed.Formula != "P" {
		t.Errorf("Expected removed assumption P, got %s %q", removed.Kind, removed.Formula)
	}
	if b.IsOccupied(1, 1) {
		t.Error("Expected position to be free after removal")
	}
	if b.PieceCount() != 1 {
		t.Errorf("Expected piece count 1 after removal, got %d", b.PieceCount())
	}

	if _, ok := b.Remove(1, 1); ok {
		t.Error("Expected removal of an empty position to fail")
	}
}

func TestMove(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 1, 1))
	b.Place(NewGoal("R", 4, 4))

	if !b.Move(Position{X: 1, Y: 1}, Position{X: 2, Y: 2}) {
		t.Fatal("Expected move to an empty in-bounds cell to succeed")
	}
	if b.IsOccupied(1, 1) {
		t.Error("Expected origin to be free after move")
	}
	p := b.PieceAt(2, 2)
	if p == nil || p.Kind != KindAssumption || p.Formula != "P" {
		t.Error("Expected moved piece to keep its identity")
	}

	// Occupied destination: no mutation.
	if b.Move(Position{X: 2, Y: 2}, Position{X: 4, Y: 4}) {
		t.Error("Expected move onto an occupied cell to fail")
	}
	if b.PieceAt(2, 2) == nil {
		t.Error("Expected piece to stay at origin after a failed move")
	}

	// Out-of-bounds destination: no mutation.
	if b.Move(Position{X: 2, Y: 2}, Position{X: 99, Y: 2}) {
		t.Error("Expected move out of bounds to fail")
	}
	if b.PieceAt(2, 2) == nil {
		t.Error("Expected piece to stay at origin after a failed move")
	}

	// Empty origin.
	if b.Move(Position{X: 0, Y: 0}, Position{X: 5, Y: 5}) {
		t.Error("Expected move from an empty cell to fail")
	}
}

func TestPiecesNear(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 3, 3))
	b.Place(NewAssumption("Q", 5, 5))
	b.Place(NewGoal("R", 3, 6))
	b.Place(NewGate(KindAndIntro, 9, 0))

	near := b.PiecesNear(3, 3, 2)
	if len(near) != 2 {
		t.Fatalf("Expected 2 pieces within radius 2 of (3, 3), got %d", len(near))
	}
	if near[0].Formula != "P" || near[1].Formula != "Q" {
		t.Error("Expected stored-order results P then Q")
	}

	// Radius 0 matches only the exact cell, center included.
	exact := b.PiecesNear(3, 3, 0)
	if len(exact) != 1 || exact[0].Formula != "P" {
		t.Errorf("Expected radius 0 to match only the piece at (3, 3), got %d pieces", len(exact))
	}

	if got := b.PiecesNear(0, 0, 1); len(got) != 0 {
		t.Errorf("Expected no pieces near (0, 0), got %d", len(got))
	}
}

func TestKindFilters(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 0, 0))
	b.Place(NewAssumption("Q", 0, 1))
	b.Place(NewGoal("R", 0, 2))
	b.Place(NewGate(KindAndIntro, 0, 3))
	b.Place(NewGate(KindNotIntro, 0, 4))
	b.Place(NewQuantifier(KindForallIntro, "x", 0, 5))
	b.Place(NewWire(Position{X: 0, Y: 6}, Position{X: 1, Y: 6}))

	if got := len(b.Assumptions()); got != 2 {
		t.Errorf("Expected 2 assumptions, got %d", got)
	}
	if got := len(b.Goals()); got != 1 {
		t.Errorf("Expected 1 goal, got %d", got)
	}
	// Quantifiers are not gates.
	if got := len(b.Gates()); got != 2 {
		t.Errorf("Expected 2 gates, got %d", got)
	}
	if got := len(b.Wires()); got != 1 {
		t.Errorf("Expected 1 wire, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 1, 1))

	clone := b.Clone()
	clone.Place(NewGoal("R", 2, 2))
	clone.Pieces[0].SetPosition(Position{X: 7, Y: 7})

	if b.PieceCount() != 1 {
		t.Errorf("Expected original piece count 1, got %d", b.PieceCount())
	}
	if b.Pieces[0].Position != (Position{X: 1, Y: 1}) {
		t.Error("Expected original piece position to be unaffected by clone mutation")
	}
}

func TestClear(t *testing.T) {
	b := createTestBoard()
	b.Place(NewAssumption("P", 1, 1))
	b.Place(NewGoal("R", 2, 2))
	b.Clear()
	if b.PieceCount() != 0 {
		t.Errorf("Expected empty board after Clear, got %d pieces", b.PieceCount())
	}
}
