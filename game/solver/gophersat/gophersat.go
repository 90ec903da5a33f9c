// Package gophersat adapts the gophersat SAT solver as the default in-process
// satisfiability backend. Formula strings are treated as opaque propositional
// variables; queries involving quantifiers or arithmetic belong to an external
// SMT backend instead.
package gophersat

import (
	"context"

	"github.com/crillab/gophersat/bf"

	"github.com/proofgrid/proofgrid/game/verify"
)

// Solver checks refutation queries with gophersat. The zero value is ready to
// use and safe for concurrent callers; each check builds an independent
// formula.
type Solver struct{}

// New returns a ready solver.
func New() *Solver {
	return &Solver{}
}

// Check encodes the query as a boolean formula and solves it. The formula
// conjoins every assumption, the premises-imply-conclusion constraint, and the
// negated conclusion; an unsatisfiable formula certifies entailment. gophersat
// is complete for this fragment, so unknown is never returned.
func (s *Solver) Check(ctx context.Context, q verify.Query) (verify.SatResult, error) {
	if err := ctx.Err(); err != nil {
		return verify.ResultUnknown, err
	}

	parts := make([]bf.Formula, 0, len(q.Assumptions)+2)
	for _, a := range q.Assumptions {
		parts = append(parts, bf.Var(a))
	}
	if len(q.Premises) > 0 && q.Conclusion != "" {
		premises := make([]bf.Formula, len(q.Premises))
		for i, p := range q.Premises {
			premises[i] = bf.Var(p)
		}
		parts = append(parts, bf.Implies(bf.And(premises...), bf.Var(q.Conclusion)))
	}
	if q.Conclusion != "" {
		parts = append(parts, bf.Not(bf.Var(q.Conclusion)))
	}

	if model := bf.Solve(bf.And(parts...)); model != nil {
		return verify.ResultSat, nil
	}
	return verify.ResultUnsat, nil
}
