// Command packtool inspects and validates ProofGrid level pack files. It
// checks:
//   - JSON structure and required pack fields
//   - Per-level structure: board bounds, piece overlaps, wire endpoints,
//     formula syntax, goal condition consistency
//   - Presence of assumptions and goals on every initial board
//
// It can also print the SMT-LIB2 scripts a level's initial board generates
// and run a solver over a level to sanity-check pack authoring.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/solver/gophersat"
	"github.com/proofgrid/proofgrid/game/solver/z3bin"
	"github.com/proofgrid/proofgrid/game/verify"
)

func main() {
	cmd := &cli.Command{
		Name:  "packtool",
		Usage: "Inspect, validate, and solver-check level pack files",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate pack files (or every *.json in a directory)",
				ArgsUsage: "<pack.json|dir>...",
				Action:    runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print pack metadata and level boards",
				ArgsUsage: "<pack.json>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "level", Usage: "Show only this level"},
				},
				Action: runShow,
			},
			{
				Name:      "smt",
				Usage:     "Print the SMT-LIB2 script for a level's initial board",
				ArgsUsage: "<pack.json>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "level", Value: 1, Usage: "Level to render"},
					&cli.BoolFlag{Name: "refute", Usage: "Append the negated goal (refutation form)"},
				},
				Action: runSMT,
			},
			{
				Name:      "solve",
				Usage:     "Run the verification heuristic over a level's initial board",
				ArgsUsage: "<pack.json>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "level", Value: 1, Usage: "Level to check"},
					&cli.StringFlag{Name: "solver", Value: "gophersat", Usage: "Solver backend: gophersat, z3, or none"},
					&cli.StringFlag{Name: "z3-path", Value: "z3", Usage: "Path to the z3 binary"},
				},
				Action: runSolve,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadPack reads and decodes a single pack file.
func loadPack(path string) (*board.LevelPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var pack board.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &pack, nil
}

// findLevel resolves a level by ID, listing the available IDs on a miss.
func findLevel(pack *board.LevelPack, levelID int) (*board.Level, error) {
	if lvl := pack.LevelByID(levelID); lvl != nil {
		return lvl, nil
	}

	ids := make([]string, 0, len(pack.Levels))
	for _, lvl := range pack.Levels {
		ids = append(ids, fmt.Sprintf("%d", lvl.ID))
	}
	return nil, fmt.Errorf("level %d not found in pack '%s' (available: %s)",
		levelID, pack.ID, strings.Join(ids, ", "))
}

// collectPackFiles expands directory arguments into their *.json members.
func collectPackFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		} else {
			files = append(files, arg)
		}
	}
	return files, nil
}

// validatePackFile checks one pack file and returns its findings. The valid
// flag covers both pack-level and per-level structural checks.
func validatePackFile(path string) (valid bool, lines []string) {
	pack, err := loadPack(path)
	if err != nil {
		return false, []string{err.Error()}
	}

	valid = true
	if err := board.ValidatePack(pack); err != nil {
		valid = false
		lines = append(lines, err.Error())
	}

	for i := range pack.Levels {
		lvl := &pack.Levels[i]
		report := board.ValidateLevel(lvl)
		for _, e := range report.Errors {
			valid = false
			lines = append(lines, fmt.Sprintf("level %d: %s", lvl.ID, e.Error()))
		}
		for _, w := range report.Warnings {
			lines = append(lines, fmt.Sprintf("level %d (warning): %s", lvl.ID, w))
		}
	}

	if valid {
		lines = append(lines, fmt.Sprintf("✓ Pack: %s (%s)", pack.Name, pack.ID))
		lines = append(lines, fmt.Sprintf("✓ Levels: %d", len(pack.Levels)))
		lines = append(lines, fmt.Sprintf("✓ Difficulty: %d", pack.Difficulty))
	}
	return valid, lines
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"packs"}
	}

	files, err := collectPackFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no pack files found")
	}

	allValid := true
	for _, file := range files {
		valid, lines := validatePackFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), filepath.Base(file))
		if valid {
			fmt.Println("✅ VALID")
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
		}
		for _, line := range lines {
			fmt.Println("  " + line)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return fmt.Errorf("some packs have errors")
	}
	fmt.Println("✅ All packs are valid!")
	return nil
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one pack file")
	}

	pack, err := loadPack(cmd.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf("Pack: %s (%s)\n", pack.Name, pack.ID)
	fmt.Printf("Author: %s\n", pack.Author)
	fmt.Printf("Description: %s\n", pack.Description)
	fmt.Printf("Version: %s, Difficulty: %d, Levels: %d\n",
		pack.Version, pack.Difficulty, len(pack.Levels))

	only := int(cmd.Int("level"))
	for i := range pack.Levels {
		lvl := &pack.Levels[i]
		if only != 0 && lvl.ID != only {
			continue
		}

		fmt.Printf("\n--- Level %d: %s ---\n", lvl.ID, lvl.Name)
		fmt.Printf("%s\n", lvl.Description)
		fmt.Printf("Theorem: %s\n", lvl.Theorem)
		fmt.Print(renderBoard(&lvl.InitialState))
	}
	return nil
}

func runSMT(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one pack file")
	}

	pack, err := loadPack(cmd.Args().First())
	if err != nil {
		return err
	}

	lvl, err := findLevel(pack, int(cmd.Int("level")))
	if err != nil {
		return err
	}

	if cmd.Bool("refute") {
		fmt.Print(verify.RefutationScript(&lvl.InitialState))
	} else {
		fmt.Print(verify.BoardScript(&lvl.InitialState))
	}
	return nil
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one pack file")
	}

	pack, err := loadPack(cmd.Args().First())
	if err != nil {
		return err
	}

	lvl, err := findLevel(pack, int(cmd.Int("level")))
	if err != nil {
		return err
	}

	var solver verify.Solver
	switch cmd.String("solver") {
	case "gophersat":
		solver = &gophersat.Solver{}
	case "z3":
		solver = z3bin.New(cmd.String("z3-path"))
	case "none":
		solver = nil
	default:
		return fmt.Errorf("unknown solver %q (use gophersat, z3, or none)", cmd.String("solver"))
	}

	verifier := verify.New(solver)
	proven := verifier.Verify(ctx, lvl, lvl.InitialState.Pieces)

	fmt.Printf("Level %d: %s\n", lvl.ID, lvl.Name)
	fmt.Print(renderBoard(&lvl.InitialState))
	if proven {
		fmt.Println("✅ PROVEN: the initial arrangement already establishes the goal")
	} else {
		fmt.Println("❌ NOT PROVEN: the initial arrangement does not establish the goal")
	}
	return nil
}

// renderBoard prints a compact ASCII view of a board with a piece list.
func renderBoard(b *board.Board) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Board %dx%d (%d pieces):\n", b.Width, b.Height, b.PieceCount()))

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := b.PieceAt(x, y)
			switch {
			case p == nil:
				sb.WriteString(".")
			case p.Kind == board.KindAssumption:
				sb.WriteString("A")
			case p.Kind == board.KindGoal:
				sb.WriteString("G")
			case p.IsGate():
				sb.WriteString("#")
			case p.IsQuantifier():
				sb.WriteString("Q")
			default:
				sb.WriteString("+")
			}
		}
		sb.WriteString("\n")
	}

	for i := range b.Pieces {
		p := &b.Pieces[i]
		sb.WriteString(fmt.Sprintf("  (%d,%d) %s\n", p.Position.X, p.Position.Y, p.Label()))
	}
	return sb.String()
}
