package agent

import "github.com/rkatz/tcgsim/internal/engine"

// ScriptedAgent drives a player from a fixed queue of responses, peeking
// at the next pending request so a script can span several decision
// points without needing to enumerate every intermediate no-op — mirrors
// the teacher's ScriptedController (internal/game/testutil_test.go),
// which peeks its next scripted action and only consumes it once a
// matching legal action is offered, falling back to a priority default
// otherwise.
type ScriptedAgent struct {
	script []engine.Response
	pos    int
	fallback NoOpAgent
}

// NewScriptedAgent returns an agent that answers with script, in order,
// matching each entry against the requests actually pending for the
// player before consuming it.
func NewScriptedAgent(script ...engine.Response) *ScriptedAgent {
	return &ScriptedAgent{script: script}
}

func (a *ScriptedAgent) Decide(m *engine.Match, player int) error {
	reqs := m.PendingRequests(player)
	if len(reqs) == 0 {
		return nil
	}
	if a.pos < len(a.script) {
		next := a.script[a.pos]
		for _, r := range reqs {
			if r.Type == next.Type {
				a.pos++
				return m.Respond(next)
			}
		}
		// Next scripted response isn't for an available request yet
		// (e.g. it targets a future round) — fall through to the default.
	}
	return a.fallback.Decide(m, player)
}

// Done reports whether every scripted response has been consumed.
func (a *ScriptedAgent) Done() bool { return a.pos >= len(a.script) }
