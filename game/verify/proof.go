package verify

import (
	"github.com/proofgrid/proofgrid/game/board"
)

// ExportedProof is the immutable artifact produced once per successful
// verification and handed to the submission layer. ProofIsabelle is a
// placeholder for a secondary proof format and is currently always nil;
// SolutionSteps is reserved for step-by-step replay and is currently always
// empty but never null in JSON.
type ExportedProof struct {
	LevelID       int      `json:"level_id"`
	PlayerID      string   `json:"player_id"`
	ProofSMT2     string   `json:"proof_smt2"`
	ProofIsabelle *string  `json:"proof_isabelle"`
	SolutionSteps []string `json:"solution_steps"`
	TimeTakenSecs float64  `json:"time_taken_secs"`
}

// ExportProof builds the proof artifact for a solved board.
func ExportProof(lvl *board.Level, b *board.Board, playerID string, timeTakenSecs float64) ExportedProof {
	return ExportedProof{
		LevelID:       lvl.ID,
		PlayerID:      playerID,
		ProofSMT2:     BoardScript(b),
		SolutionSteps: []string{},
		TimeTakenSecs: timeTakenSecs,
	}
}
