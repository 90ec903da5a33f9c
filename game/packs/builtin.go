package packs

import "github.com/proofgrid/proofgrid/game/board"

// BuiltinTutorialPack returns the pack that ships with the game. It is always
// available, never read from disk, and its first level is the canonical
// "P, Q, AND gate" shape the verification engine recognizes.
func BuiltinTutorialPack() *board.LevelPack {
	return &board.LevelPack{
		ID:          "tutorial",
		Name:        "Tutorial",
		Author:      "ProofGrid Team",
		Description: "Learn the basics of logical proofs",
		Version:     "1.0.0",
		Difficulty:  1,
		Tags:        []string{"tutorial", "beginner"},
		Levels: []board.Level{
			{
				ID:          1,
				Name:        "First Steps",
				Description: "Place an AND gate to connect P and Q, then connect to R",
				Theorem:     "(assert (=> (and P Q) R))",
				InitialState: *board.WithPieces(10, 10, []board.Piece{
					board.NewAssumption("P", 2, 5),
					board.NewAssumption("Q", 2, 3),
					board.NewGoal("R", 8, 4),
				}),
				Goal: board.GoalCondition{Kind: board.GoalProveFormula, Formula: "R"},
			},
			{
				ID:          2,
				Name:        "Either Way",
				Description: "Use OR introduction to prove A ∨ B from A",
				Theorem:     "(assert (=> A (or A B)))",
				InitialState: *board.WithPieces(10, 10, []board.Piece{
					board.NewAssumption("A", 2, 5),
					board.NewGoal("A ∨ B", 8, 5),
				}),
				Goal: board.GoalCondition{Kind: board.GoalProveFormula, Formula: "(or A B)"},
			},
			{
				ID:          3,
				Name:        "Conjunction Junction",
				Description: "Combine X, Y, and Z using multiple AND gates",
				Theorem:     "(assert (=> (and (and X Y) Z) Result))",
				InitialState: *board.WithPieces(10, 10, []board.Piece{
					board.NewAssumption("X", 1, 7),
					board.NewAssumption("Y", 1, 5),
					board.NewAssumption("Z", 1, 3),
					board.NewGoal("Result", 9, 5),
				}),
				Goal: board.GoalCondition{Kind: board.GoalProveFormula, Formula: "Result"},
			},
			{
				ID:          4,
				Name:        "Chain of Logic",
				Description: "Build a chain: A → (A ∧ B) → Goal",
				Theorem:     "(assert (=> (and A B) Goal))",
				InitialState: *board.WithPieces(10, 10, []board.Piece{
					board.NewAssumption("A", 1, 6),
					board.NewAssumption("B", 1, 4),
					board.NewGoal("Goal", 9, 5),
				}),
				Goal: board.GoalCondition{Kind: board.GoalProveFormula, Formula: "Goal"},
			},
		},
	}
}
