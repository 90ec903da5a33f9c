// Command analyze prints quick, human-readable heuristics about level pack
// files. For each level it summarizes board dimensions, piece counts, and
// terminal spread, and highlights levels where no single gate placement can
// reach both the assumptions and the goal (meaning the player must relocate
// pieces before a proof can connect).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/verify"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		matches, err := filepath.Glob(filepath.Join("packs", "*.json"))
		if err != nil || len(matches) == 0 {
			fmt.Println("Usage: analyze <pack.json>...")
			fmt.Println("(no pack files found in ./packs)")
			os.Exit(1)
		}
		args = matches
	}

	for _, packFile := range args {
		fmt.Printf("\n=== Analyzing %s ===\n", packFile)
		analyzePack(packFile)
	}
}

func analyzePack(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var pack board.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Pack: %s (%s)\n", pack.Name, pack.ID)
	fmt.Printf("Author: %s, Difficulty: %d, Levels: %d\n",
		pack.Author, pack.Difficulty, len(pack.Levels))

	for i := range pack.Levels {
		analyzeLevel(&pack.Levels[i])
	}
}

func analyzeLevel(lvl *board.Level) {
	b := &lvl.InitialState

	fmt.Printf("\n--- Level %d: %s ---\n", lvl.ID, lvl.Name)
	fmt.Printf("Board: %d x %d\n", b.Width, b.Height)

	assumptions := b.Assumptions()
	goals := b.Goals()
	gates := b.Gates()

	fmt.Printf("Assumptions: %d, Goals: %d, Gates: %d, Total pieces: %d\n",
		len(assumptions), len(goals), len(gates), b.PieceCount())

	if len(assumptions) == 0 || len(goals) == 0 {
		fmt.Println("⚠️  WARNING: level is missing assumptions or goals; it can never verify")
		return
	}

	// Terminal spread: the furthest assumption-to-goal distance hints at how
	// much wiring a proof needs.
	maxSpread := 0
	for _, a := range assumptions {
		for _, g := range goals {
			spread := chebyshev(a.Position, g.Position)
			if spread > maxSpread {
				maxSpread = spread
			}
		}
	}
	fmt.Printf("Max assumption-goal spread: %d cells\n", maxSpread)

	// Count cells where one gate would reach every assumption and a goal.
	bridgeCells := countBridgeCells(b, assumptions, goals)
	if bridgeCells > 0 {
		fmt.Printf("✓ Connectable: %d cell(s) can bridge all assumptions to a goal with one gate\n", bridgeCells)
	} else {
		fmt.Println("⚠️  No single-gate bridge exists: the player must relocate pieces to connect a proof")
	}

	report := board.ValidateLevel(lvl)
	for _, e := range report.Errors {
		fmt.Printf("❌ %s\n", e.Error())
	}
	for _, w := range report.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}

// countBridgeCells counts the empty cells from which a gate would be within
// range of every assumption and at least one goal.
func countBridgeCells(b *board.Board, assumptions, goals []*board.Piece) int {
	count := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.IsOccupied(x, y) {
				continue
			}

			pos := board.Position{X: x, Y: y}
			reachesAll := true
			for _, a := range assumptions {
				if !verify.IsAdjacent(pos, a.Position) {
					reachesAll = false
					break
				}
			}
			if !reachesAll {
				continue
			}

			for _, g := range goals {
				if verify.IsAdjacent(pos, g.Position) {
					count++
					break
				}
			}
		}
	}
	return count
}

func chebyshev(a, b board.Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
