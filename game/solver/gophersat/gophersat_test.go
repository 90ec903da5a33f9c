package gophersat

import (
	"context"
	"testing"

	"github.com/proofgrid/proofgrid/game/verify"
)

func TestCheckEntailedQueryIsUnsat(t *testing.T) {
	s := New()
	q := verify.Query{
		Assumptions: []string{"P", "Q"},
		Premises:    []string{"P", "Q"},
		Conclusion:  "R",
	}
	result, err := s.Check(context.Background(), q)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result != verify.ResultUnsat {
		t.Errorf("Expected unsat for an entailed conclusion, got %s", result)
	}
}

func TestCheckUnentailedQueryIsSat(t *testing.T) {
	s := New()
	// R does not follow from P alone; no implication links them.
	q := verify.Query{
		Assumptions: []string{"P"},
		Conclusion:  "R",
	}
	result, err := s.Check(context.Background(), q)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result != verify.ResultSat {
		t.Errorf("Expected sat when the conclusion is not entailed, got %s", result)
	}
}

func TestCheckMissingPremiseIsSat(t *testing.T) {
	s := New()
	// Only P is assumed, so (P ∧ Q) ⇒ R does not force R.
	q := verify.Query{
		Assumptions: []string{"P"},
		Premises:    []string{"P", "Q"},
		Conclusion:  "R",
	}
	result, err := s.Check(context.Background(), q)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result != verify.ResultSat {
		t.Errorf("Expected sat with a missing premise, got %s", result)
	}
}

func TestCheckHonorsCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Check(ctx, verify.Query{Assumptions: []string{"P"}, Conclusion: "R"})
	if err == nil {
		t.Error("Expected an error from a cancelled context")
	}
	if result != verify.ResultUnknown {
		t.Errorf("Expected unknown on cancellation, got %s", result)
	}
}
