package board

import "fmt"

// Kind identifies the logical role of a piece.
type Kind string

const (
	KindAssumption   Kind = "assumption"
	KindGoal         Kind = "goal"
	KindAndIntro     Kind = "and_intro"
	KindOrIntro      Kind = "or_intro"
	KindImpliesIntro Kind = "implies_intro"
	KindNotIntro     Kind = "not_intro"
	KindForallIntro  Kind = "forall_intro"
	KindExistsIntro  Kind = "exists_intro"
	KindWire         Kind = "wire"
)

// Position is a pair of grid coordinates. Equality is exact integer equality.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is a single unit placed on the board. The Kind field selects which of
// the payload fields are meaningful: Formula for assumptions and goals,
// Variable for quantifier gates, WireTo for wires. Position is the canonical
// position for every kind; for wires it is the "from" endpoint.
//
// The payload (Formula, Variable, WireTo) is fixed at construction; only the
// canonical position is reassigned when a piece moves.
type Piece struct {
	Kind     Kind     `json:"kind"`
	Position Position `json:"position"`
	Formula  string   `json:"formula,omitempty"`
	Variable string   `json:"variable,omitempty"`
	WireTo   Position `json:"wire_to,omitempty"`
}

// NewAssumption creates an assumption terminal carrying an asserted formula.
func NewAssumption(formula string, x, y int) Piece {
	return Piece{Kind: KindAssumption, Formula: formula, Position: Position{X: x, Y: y}}
}

// NewGoal creates a goal terminal carrying the formula to be proven.
func NewGoal(formula string, x, y int) Piece {
	return Piece{Kind: KindGoal, Formula: formula, Position: Position{X: x, Y: y}}
}

// NewGate creates a connective gate piece. Only the four gate kinds are
// meaningful here; other kinds yield a piece that filters will ignore.
func NewGate(kind Kind, x, y int) Piece {
	return Piece{Kind: kind, Position: Position{X: x, Y: y}}
}

// NewQuantifier creates a quantifier-introduction gate with a bound variable.
func NewQuantifier(kind Kind, variable string, x, y int) Piece {
	return Piece{Kind: kind, Variable: variable, Position: Position{X: x, Y: y}}
}

// NewWire creates a connector between two positions. The from endpoint is the
// canonical position.
func NewWire(from, to Position) Piece {
	return Piece{Kind: KindWire, Position: from, WireTo: to}
}

// SetPosition reassigns the canonical position. For wires this moves the
// "from" endpoint and leaves "to" untouched.
func (p *Piece) SetPosition(pos Position) {
	p.Position = pos
}

// IsGate reports whether the piece is one of the four connective gates.
// Quantifier introductions are not gates.
func (p *Piece) IsGate() bool {
	switch p.Kind {
	case KindAndIntro, KindOrIntro, KindImpliesIntro, KindNotIntro:
		return true
	}
	return false
}

// IsTerminal reports whether the piece carries a formula of its own.
func (p *Piece) IsTerminal() bool {
	return p.Kind == KindAssumption || p.Kind == KindGoal
}

// IsQuantifier reports whether the piece is a quantifier introduction.
func (p *Piece) IsQuantifier() bool {
	return p.Kind == KindForallIntro || p.Kind == KindExistsIntro
}

// SMTFragment renders the piece's local SMT-LIB2 fragment. Gates have no
// operands of their own (operand binding comes from spatial adjacency, which
// the verification engine resolves), so they emit placeholder forms. The goal
// fragment asserts the negated formula for refutation-style checking; callers
// assembling a whole-board script should use the generators in game/verify
// rather than concatenating these fragments.
func (p *Piece) SMTFragment() string {
	switch p.Kind {
	case KindAssumption:
		return fmt.Sprintf("(assert %s)", p.Formula)
	case KindGoal:
		return fmt.Sprintf("(assert (not %s))", p.Formula)
	case KindAndIntro:
		return "(and _ _)"
	case KindOrIntro:
		return "(or _ _)"
	case KindImpliesIntro:
		return "(=> _ _)"
	case KindNotIntro:
		return "(not _)"
	case KindForallIntro:
		return fmt.Sprintf("(forall ((%s Int)) _)", p.Variable)
	case KindExistsIntro:
		return fmt.Sprintf("(exists ((%s Int)) _)", p.Variable)
	case KindWire:
		return ""
	}
	return ""
}

// Label returns the short display label used by clients and CLI renderings.
func (p *Piece) Label() string {
	switch p.Kind {
	case KindAssumption, KindGoal:
		return p.Formula
	case KindAndIntro:
		return "AND"
	case KindOrIntro:
		return "OR"
	case KindImpliesIntro:
		return "=>"
	case KindNotIntro:
		return "NOT"
	case KindForallIntro:
		return "∀" + p.Variable
	case KindExistsIntro:
		return "∃" + p.Variable
	case KindWire:
		return "-"
	}
	return "?"
}
