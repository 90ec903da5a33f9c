package board

import "fmt"

// ErrorCode classifies a structural validation failure.
type ErrorCode string

const (
	CodeOutOfBounds    ErrorCode = "out_of_bounds"
	CodeOverlap        ErrorCode = "overlapping_pieces"
	CodeInvalidWire    ErrorCode = "invalid_wire"
	CodeNoAssumptions  ErrorCode = "no_assumptions"
	CodeNoGoals        ErrorCode = "no_goals"
	CodeInvalidFormula ErrorCode = "invalid_formula"
)

// ValidationError is a single recoverable structural violation. Position is
// meaningful for piece-local violations and zero for board-global ones.
type ValidationError struct {
	Code     ErrorCode `json:"code"`
	Position Position  `json:"position"`
	Message  string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s at (%d, %d): %s", e.Code, e.Position.X, e.Position.Y, e.Message)
}

// Report is the outcome of validating a board or level. IsValid is true iff
// Errors is empty; Warnings are advisory and never affect validity.
type Report struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings"`
}

func (r *Report) addError(code ErrorCode, pos Position, format string, args ...interface{}) {
	r.Errors = append(r.Errors, ValidationError{
		Code:     code,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) merge(other Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func (r *Report) finish() Report {
	r.IsValid = len(r.Errors) == 0
	return *r
}

// ValidatePlacement checks a single candidate piece against the board and
// returns the first violated rule, or nil. Checks run in a fixed order:
// bounds, occupancy, wire endpoint rules, then formula syntax for terminals.
func ValidatePlacement(b *Board, p Piece) *ValidationError {
	pos := p.Position
	if !b.InBounds(pos.X, pos.Y) {
		return &ValidationError{
			Code:     CodeOutOfBounds,
			Position: pos,
			Message:  fmt.Sprintf("position outside %dx%d board", b.Width, b.Height),
		}
	}
	if b.IsOccupied(pos.X, pos.Y) {
		return &ValidationError{
			Code:     CodeOverlap,
			Position: pos,
			Message:  "position already occupied",
		}
	}
	if p.Kind == KindWire {
		if p.WireTo == pos {
			return &ValidationError{
				Code:     CodeInvalidWire,
				Position: pos,
				Message:  "wire endpoints are identical",
			}
		}
		if !b.InBounds(p.WireTo.X, p.WireTo.Y) {
			return &ValidationError{
				Code:     CodeInvalidWire,
				Position: pos,
				Message:  fmt.Sprintf("wire endpoint (%d, %d) outside board", p.WireTo.X, p.WireTo.Y),
			}
		}
	}
	if p.IsTerminal() && !validFormula(p.Formula) {
		return &ValidationError{
			Code:     CodeInvalidFormula,
			Position: pos,
			Message:  fmt.Sprintf("formula %q must start with a letter, digit, or '('", p.Formula),
		}
	}
	return nil
}

// ValidateBoard checks the whole board and accumulates every violation:
// out-of-bounds pieces, overlapping positions (every duplicate past the first
// occupant is reported), and the global presence of at least one assumption
// and one goal. Gates with no assumption, AND, or OR piece within a 2-cell box
// radius produce a disconnected-gate warning.
func ValidateBoard(b *Board) Report {
	var r Report

	seen := make(map[Position]bool, len(b.Pieces))
	for i := range b.Pieces {
		p := &b.Pieces[i]
		pos := p.Position
		if !b.InBounds(pos.X, pos.Y) {
			r.addError(CodeOutOfBounds, pos, "%s outside %dx%d board", p.Kind, b.Width, b.Height)
		}
		if seen[pos] {
			r.addError(CodeOverlap, pos, "multiple pieces share this position")
		}
		seen[pos] = true
	}

	if len(b.Assumptions()) == 0 {
		r.addError(CodeNoAssumptions, Position{}, "board has no assumption pieces")
	}
	if len(b.Goals()) == 0 {
		r.addError(CodeNoGoals, Position{}, "board has no goal pieces")
	}

	for _, g := range b.Gates() {
		connected := false
		for _, n := range b.PiecesNear(g.Position.X, g.Position.Y, 2) {
			switch n.Kind {
			case KindAssumption, KindAndIntro, KindOrIntro:
				connected = true
			}
		}
		if !connected {
			r.addWarning("disconnected %s gate at (%d, %d)", g.Label(), g.Position.X, g.Position.Y)
		}
	}

	return r.finish()
}

// ValidateLevel validates the level's initial board, then its goal condition.
// Out-of-bounds connect-node endpoints and a zero-depth proof tree are
// warnings; an empty prove-formula target is an error.
func ValidateLevel(lvl *Level) Report {
	var r Report
	r.merge(ValidateBoard(&lvl.InitialState))

	switch lvl.Goal.Kind {
	case GoalConnectNodes:
		for _, end := range []*Position{lvl.Goal.Start, lvl.Goal.End} {
			if end != nil && !lvl.InitialState.InBounds(end.X, end.Y) {
				r.addWarning("goal node (%d, %d) outside board", end.X, end.Y)
			}
		}
	case GoalProveFormula:
		if lvl.Goal.Formula == "" {
			r.addError(CodeInvalidFormula, Position{}, "prove-formula goal has an empty formula")
		}
	case GoalBuildProofTree:
		if lvl.Goal.Depth == 0 {
			r.addWarning("proof-tree goal has depth 0")
		}
	}

	return r.finish()
}

// ReadyForVerification reports whether the board is structurally valid and has
// at least the minimum shape of a proof: an assumption, a gate, and a goal.
func ReadyForVerification(b *Board) bool {
	return ValidateBoard(b).IsValid && b.PieceCount() >= 3
}

func validFormula(formula string) bool {
	if formula == "" {
		return false
	}
	c := formula[0]
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '(':
		return true
	}
	return false
}
