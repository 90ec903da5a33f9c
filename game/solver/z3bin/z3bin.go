// Package z3bin runs refutation queries through an external z3 binary. It
// shells out rather than binding libz3 so the default build stays pure Go; the
// binary only needs to be present when this backend is selected.
package z3bin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/proofgrid/proofgrid/game/verify"
)

// DefaultTimeout bounds a single solver invocation when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 10 * time.Second

// Solver invokes z3 once per query, feeding an SMT-LIB2 script on stdin.
type Solver struct {
	// Path is the z3 executable; "z3" resolves via PATH when empty.
	Path string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// New returns a solver using the given executable path, or PATH lookup when
// path is empty.
func New(path string) *Solver {
	return &Solver{Path: path}
}

// Check renders the query as SMT-LIB2, pipes it to z3, and parses the final
// verdict line. A timeout or unparseable output yields unknown; the caller's
// fail-closed policy treats that as not proven.
func (s *Solver) Check(ctx context.Context, q verify.Query) (verify.SatResult, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	path := s.Path
	if path == "" {
		path = "z3"
	}

	cmd := exec.CommandContext(ctx, path, "-in")
	cmd.Stdin = strings.NewReader(verify.QueryScript(q))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return verify.ResultUnknown, fmt.Errorf("z3 timed out: %w", ctx.Err())
		}
		// z3 exits non-zero on script errors; the verdict line, if any,
		// still appears on stdout.
		if parsed, ok := parseVerdict(stdout.String()); ok {
			return parsed, nil
		}
		return verify.ResultUnknown, fmt.Errorf("z3 failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	if parsed, ok := parseVerdict(stdout.String()); ok {
		return parsed, nil
	}
	return verify.ResultUnknown, fmt.Errorf("unrecognized z3 output: %q", strings.TrimSpace(stdout.String()))
}

// parseVerdict scans output lines for the last sat/unsat/unknown token.
func parseVerdict(output string) (verify.SatResult, bool) {
	result := verify.SatResult("")
	for _, line := range strings.Split(output, "\n") {
		switch strings.TrimSpace(line) {
		case "sat":
			result = verify.ResultSat
		case "unsat":
			result = verify.ResultUnsat
		case "unknown":
			result = verify.ResultUnknown
		}
	}
	return result, result != ""
}
