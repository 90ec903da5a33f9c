package verify

import "context"

// SatResult is a three-valued satisfiability verdict.
type SatResult string

const (
	ResultSat     SatResult = "sat"
	ResultUnsat   SatResult = "unsat"
	ResultUnknown SatResult = "unknown"
)

// Query is a refutation check: the solver asserts every assumption, asserts
// that the conjunction of the premises implies the conclusion, then asserts
// the negated conclusion. An unsat verdict certifies that the conclusion is
// entailed. Formula strings are treated as opaque propositional symbols.
type Query struct {
	Assumptions []string
	Premises    []string
	Conclusion  string
}

// Symbols returns the distinct formula strings in the query, in first-seen
// order across assumptions, premises, conclusion.
func (q Query) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, a := range q.Assumptions {
		add(a)
	}
	for _, p := range q.Premises {
		add(p)
	}
	add(q.Conclusion)
	return out
}

// Solver is the injected satisfiability backend. Implementations must be safe
// for concurrent use and must honor context cancellation where they block.
type Solver interface {
	Check(ctx context.Context, q Query) (SatResult, error)
}
