package verify

import (
	"fmt"
	"strings"

	"github.com/proofgrid/proofgrid/game/board"
)

const scriptHeader = "; Proof of Work - Generated Proof"

// BoardScript renders the board as a descriptive SMT-LIB2 script: every
// distinct formula on an assumption or goal piece is declared as a Bool
// constant in first-seen order, every assumption formula is asserted, and the
// script ends with a check-sat. Goal formulas are declared but never asserted;
// this script documents the board for export and is always satisfiable. Use
// RefutationScript for a script whose verdict decides the proof.
func BoardScript(b *board.Board) string {
	return buildScript(b, false)
}

// RefutationScript is BoardScript plus an assertion of each goal's negation
// before the check-sat. An unsat verdict from a solver running this script
// certifies that the goals are entailed by the assumptions.
func RefutationScript(b *board.Board) string {
	return buildScript(b, true)
}

func buildScript(b *board.Board, negateGoals bool) string {
	var sb strings.Builder
	sb.WriteString(scriptHeader)
	sb.WriteByte('\n')
	sb.WriteString("(set-logic QF_UF)\n")

	seen := make(map[string]bool)
	for i := range b.Pieces {
		p := &b.Pieces[i]
		if !p.IsTerminal() || p.Formula == "" || seen[p.Formula] {
			continue
		}
		seen[p.Formula] = true
		fmt.Fprintf(&sb, "(declare-const %s Bool)\n", p.Formula)
	}

	for _, a := range b.Assumptions() {
		fmt.Fprintf(&sb, "(assert %s)\n", a.Formula)
	}
	if negateGoals {
		for _, g := range b.Goals() {
			fmt.Fprintf(&sb, "(assert (not %s))\n", g.Formula)
		}
	}

	sb.WriteString("(check-sat)\n")
	return sb.String()
}

// QueryScript renders a refutation Query as an SMT-LIB2 script for an
// external solver process.
func QueryScript(q Query) string {
	var sb strings.Builder
	sb.WriteString(scriptHeader)
	sb.WriteByte('\n')
	sb.WriteString("(set-logic QF_UF)\n")
	for _, sym := range q.Symbols() {
		fmt.Fprintf(&sb, "(declare-const %s Bool)\n", sym)
	}
	for _, a := range q.Assumptions {
		fmt.Fprintf(&sb, "(assert %s)\n", a)
	}
	if len(q.Premises) > 0 && q.Conclusion != "" {
		fmt.Fprintf(&sb, "(assert (=> (and %s) %s))\n", strings.Join(q.Premises, " "), q.Conclusion)
	}
	if q.Conclusion != "" {
		fmt.Fprintf(&sb, "(assert (not %s))\n", q.Conclusion)
	}
	sb.WriteString("(check-sat)\n")
	return sb.String()
}
