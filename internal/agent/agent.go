// Package agent provides the two reference player-decision sources spec.md
// §6 names at the interface level but leaves external: a no-op agent (for
// scripted/automated tests) and a command-line interaction agent. Neither
// is part of the engine itself — an Agent only ever calls back into
// engine.Match through its public Respond/PendingRequests surface.
package agent

import "github.com/rkatz/tcgsim/internal/engine"

// Agent resolves one player's outstanding decisions. Decide is called
// whenever engine.Match.Step returns because that player has pending
// requests; it should call m.Respond for exactly one of them (or return
// an error/no-op to leave the match waiting, e.g. when scripted input is
// exhausted).
type Agent interface {
	Decide(m *engine.Match, player int) error
}

// NoOpAgent always declares round end when asked, and otherwise answers
// the first pending request it is offered with the first legal candidate
// — enough to drive a match to completion without any real strategy,
// grounded on the teacher's ScriptedController fallback behavior
// (internal/game/testutil_test.go: "Pass > EndTurn > ... > last action").
type NoOpAgent struct{}

func (NoOpAgent) Decide(m *engine.Match, player int) error {
	reqs := m.PendingRequests(player)
	if len(reqs) == 0 {
		return nil
	}
	for _, r := range reqs {
		if r.Type == engine.RequestDeclareRoundEnd {
			return m.Respond(engine.Response{Type: engine.RequestDeclareRoundEnd, Player: player, DeclareRoundEnd: true})
		}
	}
	r := reqs[0]
	return m.Respond(firstCandidateResponse(r))
}

func firstCandidateResponse(r engine.Request) engine.Response {
	resp := engine.Response{Type: r.Type, Player: r.Player}
	switch r.Type {
	case engine.RequestSwitchCard:
		// take none, keep the opening hand
	case engine.RequestChooseCharacter:
		if len(r.CharacterCandidates) > 0 {
			resp.CharacterIndex = r.CharacterCandidates[0]
		}
	case engine.RequestRerollDice:
		// reroll nothing
	case engine.RequestSwitchCharacter:
		if len(r.CharacterCandidates) > 0 {
			resp.CharacterIndex = r.CharacterCandidates[0]
		}
	case engine.RequestDeclareRoundEnd:
		resp.DeclareRoundEnd = true
	}
	return resp
}
