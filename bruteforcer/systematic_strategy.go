package main

import (
	"fmt"
	"sort"
)

// GoalMove relocates the goal piece so it lands within gate range.
type GoalMove struct {
	From Position
	To   Position
}

// Plan is one candidate arrangement: a gate placement plus an optional goal
// relocation. Plans are tried in scoring order.
type Plan struct {
	GateKind string
	GatePos  Position
	GoalMove *GoalMove
	score    int
}

func (p *Plan) String() string {
	if p.GoalMove != nil {
		return fmt.Sprintf("gate %s at (%d,%d), goal moved to (%d,%d)",
			p.GateKind, p.GatePos.X, p.GatePos.Y, p.GoalMove.To.X, p.GoalMove.To.Y)
	}
	return fmt.Sprintf("gate %s at (%d,%d)", p.GateKind, p.GatePos.X, p.GatePos.Y)
}

// SystematicStrategy enumerates gate placements ordered by how many
// assumptions and goals they would connect to. The verification engine
// accepts an arrangement when a gate sits within 2 cells of the premises and
// the goal, so cells adjacent to the most terminals are tried first.
type SystematicStrategy struct {
	plans []Plan
	next  int
}

// NewSystematicStrategy builds the full candidate list from the initial
// board. Boards the strategy drives are small (tutorial levels are 10x10),
// so exhaustive enumeration is fine.
func NewSystematicStrategy(b *Board) *SystematicStrategy {
	s := &SystematicStrategy{}
	s.plans = enumeratePlans(b)
	return s
}

// NextPlan returns the next untried arrangement.
func (s *SystematicStrategy) NextPlan() (*Plan, bool) {
	if s.next >= len(s.plans) {
		return nil, false
	}
	plan := &s.plans[s.next]
	s.next++
	return plan, true
}

// Remaining reports how many arrangements are left to try.
func (s *SystematicStrategy) Remaining() int {
	return len(s.plans) - s.next
}

// Reset rewinds the strategy to the first plan.
func (s *SystematicStrategy) Reset() {
	s.next = 0
}

// withinRange mirrors the server's connectivity rule: within 2 cells on both
// axes, not the same cell.
func withinRange(a, b Position) bool {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	return dx <= 2 && dy <= 2 && dx+dy > 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func occupied(b *Board, pos Position) bool {
	for i := range b.Pieces {
		if b.Pieces[i].Position == pos {
			return true
		}
	}
	return false
}

// enumeratePlans produces gate placements for every free cell, scored by the
// terminals they would reach. Cells that reach all assumptions and a goal
// score highest; when no goal is in range, a secondary plan relocates the
// goal to a free cell near the gate.
func enumeratePlans(b *Board) []Plan {
	var assumptions, goals []Position
	for i := range b.Pieces {
		switch b.Pieces[i].Kind {
		case "assumption":
			assumptions = append(assumptions, b.Pieces[i].Position)
		case "goal":
			goals = append(goals, b.Pieces[i].Position)
		}
	}
	if len(assumptions) == 0 || len(goals) == 0 {
		return nil
	}

	var plans []Plan
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			pos := Position{X: x, Y: y}
			if occupied(b, pos) {
				continue
			}

			reached := 0
			for _, a := range assumptions {
				if withinRange(pos, a) {
					reached++
				}
			}
			if reached == 0 {
				// A gate with no premises in range can never prove anything.
				continue
			}

			goalInRange := false
			for _, g := range goals {
				if withinRange(pos, g) {
					goalInRange = true
					break
				}
			}

			if goalInRange {
				plans = append(plans, Plan{
					GateKind: "and_intro",
					GatePos:  pos,
					score:    reached*10 + 5,
				})
				continue
			}

			// No goal in range: plan a goal relocation to a nearby free cell.
			if target, ok := freeCellNear(b, pos); ok {
				plans = append(plans, Plan{
					GateKind: "and_intro",
					GatePos:  pos,
					GoalMove: &GoalMove{From: goals[0], To: target},
					score:    reached * 10,
				})
			}
		}
	}

	// Highest-scoring placements first; ties resolve in scan order.
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].score > plans[j].score
	})
	return plans
}

// freeCellNear finds an empty in-bounds cell within gate range of pos.
func freeCellNear(b *Board, pos Position) (Position, bool) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cand := Position{X: pos.X + dx, Y: pos.Y + dy}
			if cand.X < 0 || cand.Y < 0 || cand.X >= b.Width || cand.Y >= b.Height {
				continue
			}
			if !occupied(b, cand) {
				return cand, true
			}
		}
	}
	return Position{}, false
}
