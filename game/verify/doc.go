// Package verify decides whether a board constitutes a proof of its level's
// goal and renders boards as SMT-LIB2 scripts.
//
// The decision procedure is deliberately narrow: it recognizes the one puzzle
// shape the tutorial pack teaches, a single AND gate combining assumptions
// named "P" and "Q" next to a goal. When a Solver is injected, each candidate
// gate is certified by refutation (the negated goal must be unsatisfiable
// together with the assumptions); without a solver the spatial connectivity
// test alone decides. Verification never mutates its inputs and is safe to
// call concurrently over independent boards.
package verify
