package board

import "fmt"

// GoalKind selects which winning condition a level uses.
type GoalKind string

const (
	// GoalConnectNodes asks the player to connect two named grid nodes.
	// Structurally validated only; not semantically verified.
	GoalConnectNodes GoalKind = "connect_nodes"
	// GoalProveFormula asks the player to prove a named formula. This is the
	// condition the verification engine decides.
	GoalProveFormula GoalKind = "prove_formula"
	// GoalBuildProofTree asks for a proof tree of a given depth.
	// Structurally validated only.
	GoalBuildProofTree GoalKind = "build_proof_tree"
)

// GoalCondition describes what a level considers solved. The Kind field
// selects which payload fields apply.
type GoalCondition struct {
	Kind    GoalKind  `json:"kind"`
	Start   *Position `json:"start,omitempty"`
	End     *Position `json:"end,omitempty"`
	Formula string    `json:"formula,omitempty"`
	Depth   int       `json:"depth,omitempty"`
}

/// Level is a single puzzle: display metadata, an informational theorem string
// (never parsed by the verification engine), the initial board, and the goal
// condition.
type Level struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Theorem      string        `json:"theorem"`
	InitialState Board         `json:"initial_state"`
	Goal         GoalCondition `json:"goal_state"`
}

// LevelPack is a named, ordered collection of levels. Packs are authored
// externally and loaded read-only; level IDs are unique within a pack.
type LevelPack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Difficulty  int      `json:"difficulty"`
	Tags        []string `json:"tags,omitempty"`
	Levels      []Level  `json:"levels"`
}

// LevelByID returns the level with the given id, or nil.
func (p *LevelPack) LevelByID(id int) *Level {
	for i := range p.Levels {
		if p.Levels[i].ID == id {
			return &p.Levels[i]
		}
	}
	return nil
}

// ValidatePack checks structural soundness of a pack: non-empty id and name,
// at least one level, and unique level IDs. Per-level issues are reported by
// ValidateLevel.
func ValidatePack(p *LevelPack) error {
	if p.ID == "" {
		return fmt.Errorf("pack has an empty id")
	}
	if p.Name == "" {
		return fmt.Errorf("pack %q has an empty name", p.ID)
	}
	if len(p.Levels) == 0 {
		return fmt.Errorf("pack %q has no levels", p.ID)
	}
	seen := make(map[int]bool, len(p.Levels))
	for i := range p.Levels {
		id := p.Levels[i].ID
		if seen[id] {
			return fmt.Errorf("pack %q has duplicate level id %d", p.ID, id)
		}
		seen[id] = true
	}
	return nil
}
