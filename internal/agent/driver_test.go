package agent

import (
	"testing"

	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/engine/catalog"
)

// newTestMatch builds a Match with the example catalog's default Config and
// default deck (its three characters plus catalog.DefaultDeck's cards),
// mirroring the shape of the teacher's test fixtures
// (internal/game/testutil_test.go) which build a minimal deck rather than a
// tournament-legal one.
func newTestMatch(t *testing.T, seed int64) *engine.Match {
	t.Helper()
	cat := catalog.Build()
	cfg := catalog.DefaultConfig()
	m := engine.NewMatch(cfg, cat, seed, nil)

	chars, deck := catalog.DefaultDeck()
	for p := 0; p < 2; p++ {
		if err := m.SetDeck(p, chars, deck); err != nil {
			t.Fatalf("SetDeck(%d): %v", p, err)
		}
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m
}

func TestRunMatchNoOpAgentsTerminates(t *testing.T) {
	m := newTestMatch(t, 42)
	winner, err := RunMatch(m, [2]Agent{NoOpAgent{}, NoOpAgent{}}, 5000)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if winner != engine.DrawResult {
		t.Fatalf("expected a draw once the round limit is hit with no damage dealt, got %d", winner)
	}
	if m.State != engine.StateEnded {
		t.Fatalf("expected StateEnded, got %v", m.State)
	}
}

func TestScriptedAgentSwitchCardAndChoose(t *testing.T) {
	m := newTestMatch(t, 7)

	script0 := NewScriptedAgent(
		engine.Response{Type: engine.RequestSwitchCard, Player: 0},
		engine.Response{Type: engine.RequestChooseCharacter, Player: 0, CharacterIndex: 0},
	)
	script1 := NewScriptedAgent(
		engine.Response{Type: engine.RequestSwitchCard, Player: 1},
		engine.Response{Type: engine.RequestChooseCharacter, Player: 1, CharacterIndex: 0},
	)

	for i := 0; i < 50 && !(script0.Done() && script1.Done()); i++ {
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
		for p, s := range []*ScriptedAgent{script0, script1} {
			if len(m.PendingRequests(p)) > 0 {
				if err := s.Decide(m, p); err != nil {
					t.Fatalf("player %d decide: %v", p, err)
				}
			}
		}
	}
	// Respond only queues each ChooseCharacter action; Step applies them.
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.Tables[0].ActiveIndex != 0 || m.Tables[1].ActiveIndex != 0 {
		t.Fatalf("expected both players to have chosen character 0 active, got %d/%d",
			m.Tables[0].ActiveIndex, m.Tables[1].ActiveIndex)
	}
}

func TestParseCommandGrammar(t *testing.T) {
	reqs := []engine.Request{
		{Type: engine.RequestUseSkill, Player: 0, SkillCandidates: []int{0, 1}},
	}
	resp, err := ParseCommand(0, reqs, []string{"skill", "1", "0", "2"})
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if resp.SkillIndex != 1 || len(resp.PayDice) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if _, err := ParseCommand(0, reqs, []string{"card", "0"}); err == nil {
		t.Fatalf("expected error: no use-card request pending")
	}
}
