package agent

import (
	"fmt"

	"github.com/rkatz/tcgsim/internal/engine"
)

// RunMatch drives m to completion by repeatedly calling Step and handing
// control to whichever agent owns the pending requests, mirroring the
// teacher's Duel.Run main loop (internal/game/duel.go) generalized from a
// single TurnPlayer to the engine's per-player pending-request model.
// maxSteps bounds total Step(true) calls as a safety net against a
// misbehaving agent that leaves requests unanswered; original_source and
// the teacher both cap duel length similarly (MaxTurns/maxTurns).
func RunMatch(m *engine.Match, agents [2]Agent, maxSteps int) (int, error) {
	for i := 0; i < maxSteps; i++ {
		if err := m.Step(true); err != nil {
			return engine.NoWinner, fmt.Errorf("agent: step: %w", err)
		}
		if m.State == engine.StateEnded {
			return m.Winner, nil
		}
		if !m.HasPendingRequests() {
			continue
		}
		acted := false
		for p := 0; p < 2; p++ {
			if len(m.PendingRequests(p)) == 0 {
				continue
			}
			if err := agents[p].Decide(m, p); err != nil {
				return engine.NoWinner, fmt.Errorf("agent: player %d decide: %w", p, err)
			}
			acted = true
		}
		if !acted {
			return engine.NoWinner, fmt.Errorf("agent: match has pending requests but no agent responded")
		}
	}
	return engine.NoWinner, fmt.Errorf("agent: match did not conclude within %d steps", maxSteps)
}
