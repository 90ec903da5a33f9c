package verify

import (
	"context"

	"github.com/proofgrid/proofgrid/game/board"
)

// IsAdjacent reports whether two distinct positions are within a 2-cell
// Chebyshev box of each other. A position is never adjacent to itself.
func IsAdjacent(a, b board.Position) bool {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	return dx <= 2 && dy <= 2 && dx+dy > 0
}

// Verifier decides proofs. A nil solver degrades to the connectivity-only
// approximation, which trusts spatial adjacency without a refutation check.
type Verifier struct {
	solver Solver
}

// New creates a verifier backed by the given solver. Pass nil for the
// solver-free fallback.
func New(solver Solver) *Verifier {
	return &Verifier{solver: solver}
}

// Verify reports whether the given pieces prove the level's goal. The piece
// list may differ from the level's initial board. Verification is idempotent
// and never mutates its inputs; solver errors and unknown verdicts count as
// not proven.
//
// The supported shape is a single AND gate adjacent to an assumption "P", an
// assumption "Q", and a goal piece. Each candidate gate is tested
// independently; the first certified gate wins.
func (v *Verifier) Verify(ctx context.Context, lvl *board.Level, pieces []board.Piece) bool {
	var assumptions, goals, andGates []*board.Piece
	for i := range pieces {
		switch pieces[i].Kind {
		case board.KindAssumption:
			assumptions = append(assumptions, &pieces[i])
		case board.KindGoal:
			goals = append(goals, &pieces[i])
		case board.KindAndIntro:
			andGates = append(andGates, &pieces[i])
		}
	}

	for _, gate := range andGates {
		if !hasAdjacentFormula(assumptions, gate.Position, "P") {
			continue
		}
		if !hasAdjacentFormula(assumptions, gate.Position, "Q") {
			continue
		}
		goal := adjacentGoal(goals, gate.Position)
		if goal == nil {
			continue
		}

		if v.solver == nil {
			return true
		}

		q := Query{
			Assumptions: []string{"P", "Q"},
			Premises:    []string{"P", "Q"},
			Conclusion:  goal.Formula,
		}
		result, err := v.solver.Check(ctx, q)
		if err != nil {
			continue
		}
		if result == ResultUnsat {
			return true
		}
	}
	return false
}

func hasAdjacentFormula(pieces []*board.Piece, pos board.Position, formula string) bool {
	for _, p := range pieces {
		if p.Formula == formula && IsAdjacent(p.Position, pos) {
			return true
		}
	}
	return false
}

func adjacentGoal(goals []*board.Piece, pos board.Position) *board.Piece {
	for _, g := range goals {
		if IsAdjacent(g.Position, pos) {
			return g
		}
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
