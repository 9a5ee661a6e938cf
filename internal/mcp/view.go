package mcp

import "github.com/rkatz/tcgsim/internal/engine"

// CharacterView is the JSON-facing summary of one character, grounded on
// the teacher's ZoneView (internal/net/protocol.go) generalized from a
// fixed agent/tech zone card to this domain's character slot.
type CharacterView struct {
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Charge  int    `json:"charge"`
	MaxCharge int  `json:"max_charge"`
	Element string `json:"element"`
	Aura    string `json:"aura,omitempty"`
	Alive   bool   `json:"alive"`
	Active  bool   `json:"active"`
}

// PlayerView is one player's table, rendered with the same fields from
// either side's perspective: characters in full, hand, deck and dice as
// counts only (teacher's StateView hides the opponent's hand; here neither
// side's hand contents are rendered).
type PlayerView struct {
	Characters []CharacterView `json:"characters"`
	HandSize   int             `json:"hand_size"`
	DeckSize   int             `json:"deck_size"`
	DiceCount  int             `json:"dice_count"`
	DeclaredRoundEnd bool      `json:"declared_round_end"`
}

// RequestView is one outstanding decision, rendered for display.
type RequestView struct {
	Type       string `json:"type"`
	Player     int    `json:"player"`
	Candidates []int  `json:"candidates,omitempty"`
}

// StateView is the whole-match snapshot returned by every tool call.
type StateView struct {
	Round        int           `json:"round"`
	State        string        `json:"state"`
	CurrentPlayer int          `json:"current_player"`
	You          PlayerView    `json:"you"`
	Opponent     PlayerView    `json:"opponent"`
	Pending      []RequestView `json:"pending"`
	GameOver     bool          `json:"game_over"`
	Winner       int           `json:"winner,omitempty"`
	Events       []string      `json:"events"`
}

func buildPlayerView(t *engine.PlayerTable) PlayerView {
	pv := PlayerView{
		HandSize:         len(t.Hand),
		DeckSize:         len(t.Deck),
		DiceCount:        len(t.Dice),
		DeclaredRoundEnd: t.DeclaredRoundEnd,
	}
	for i, c := range t.Characters {
		pv.Characters = append(pv.Characters, CharacterView{
			Name:      c.Name,
			HP:        c.HP,
			MaxHP:     c.MaxHP,
			Charge:    c.Charge,
			MaxCharge: c.MaxCharge,
			Element:   c.Element.String(),
			Aura:      auraString(c.Aura),
			Alive:     c.Alive,
			Active:    i == t.ActiveIndex,
		})
	}
	return pv
}

func auraString(e engine.Element) string {
	if e == engine.ElementNone {
		return ""
	}
	return e.String()
}

func requestCandidates(r engine.Request) []int {
	switch r.Type {
	case engine.RequestSwitchCard:
		return r.HandCandidates
	case engine.RequestChooseCharacter, engine.RequestSwitchCharacter:
		return r.CharacterCandidates
	case engine.RequestElementalTuning:
		return r.TuneCandidates
	case engine.RequestUseSkill:
		return r.SkillCandidates
	case engine.RequestUseCard:
		return r.CardCandidates
	default:
		return nil
	}
}

// buildStateView renders the match from claudePlayer's perspective.
func (s *MatchSession) buildStateView() StateView {
	m := s.match
	sv := StateView{
		Round:         m.RoundNumber,
		State:         m.State.String(),
		CurrentPlayer: m.CurrentPlayer,
		You:           buildPlayerView(m.Tables[s.claudePlayer]),
		Opponent:      buildPlayerView(m.Tables[s.opponentPlayer()]),
		GameOver:      m.State == engine.StateEnded,
		Winner:        m.Winner,
	}
	for _, r := range m.PendingRequests(s.claudePlayer) {
		sv.Pending = append(sv.Pending, RequestView{
			Type:       r.Type.String(),
			Player:     r.Player,
			Candidates: requestCandidates(r),
		})
	}
	sv.Events = eventSummaries(s.newEvents())
	return sv
}
