package httpapi

import (
	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/log"
)

// ServerMessage is the envelope for every server-to-client WebSocket
// message, mirroring the teacher's ServerMessage (internal/net/protocol.go)
// but framed around engine.Request/Response instead of a flat action list.
type ServerMessage struct {
	Type string `json:"type"`

	// "state": sent when the socket connects and after each accepted
	// command from that socket.
	State *StateView `json:"state,omitempty"`

	// "error": a rejected command.
	Error string `json:"error,omitempty"`
}

// ClientMessage is the envelope for every client-to-server message.
type ClientMessage struct {
	Type string `json:"type"`

	// "command": one spec.md §6 grammar line, e.g. "skill 0 1 2".
	Command string `json:"command,omitempty"`
}

// EventView mirrors the teacher's EventView, adapted to this domain's
// GameEvent vocabulary (round/state instead of turn/phase).
type EventView struct {
	Round   int    `json:"round"`
	State   string `json:"state"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Object  string `json:"object,omitempty"`
	Details string `json:"details"`
}

func eventView(e log.GameEvent) EventView {
	return EventView{
		Round:   e.Round,
		State:   e.State,
		Player:  e.Player,
		Type:    e.Type.String(),
		Object:  e.Object,
		Details: e.Details,
	}
}

// CharacterView, PlayerView, RequestView, StateView reuse the same shape
// internal/mcp renders for its own tool responses (internal/mcp/view.go
// there, this file here); kept as separate small types per package rather than a
// shared one, since the two front ends evolve independently (MCP serves
// one seat's perspective with a rolling event cursor, HTTP serves
// whichever seat the socket is bound to).
type CharacterView struct {
	Name      string `json:"name"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"max_hp"`
	Charge    int    `json:"charge"`
	MaxCharge int    `json:"max_charge"`
	Element   string `json:"element"`
	Aura      string `json:"aura,omitempty"`
	Alive     bool   `json:"alive"`
	Active    bool   `json:"active"`
}

type PlayerView struct {
	Characters       []CharacterView `json:"characters"`
	HandSize         int             `json:"hand_size"`
	DeckSize         int             `json:"deck_size"`
	DiceCount        int             `json:"dice_count"`
	DeclaredRoundEnd bool            `json:"declared_round_end"`
}

type RequestView struct {
	Type       string `json:"type"`
	Candidates []int  `json:"candidates,omitempty"`
}

// StateView is rendered from the perspective of `Player` — the seat the
// requesting WebSocket connection is bound to.
type StateView struct {
	Player        int           `json:"player"`
	Round         int           `json:"round"`
	MatchState    string        `json:"match_state"`
	CurrentPlayer int           `json:"current_player"`
	You           PlayerView    `json:"you"`
	Opponent      PlayerView    `json:"opponent"`
	Pending       []RequestView `json:"pending"`
	GameOver      bool          `json:"game_over"`
	Winner        int           `json:"winner,omitempty"`
	Events        []EventView   `json:"events"`
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

// buildStateView renders s.Match from player's perspective, draining that
// player's unread event cursor.
func (s *Session) buildStateView(player int) StateView {
	m := s.Match
	opponent := 1 - player
	sv := StateView{
		Player:        player,
		Round:         m.RoundNumber,
		MatchState:    m.State.String(),
		CurrentPlayer: m.CurrentPlayer,
		You:           buildPlayerView(m.Tables[player]),
		Opponent:      buildPlayerView(m.Tables[opponent]),
		GameOver:      m.State == engine.StateEnded,
		Winner:        m.Winner,
	}
	for _, r := range m.PendingRequests(player) {
		sv.Pending = append(sv.Pending, RequestView{Type: r.Type.String(), Candidates: requestCandidates(r)})
	}
	for _, e := range s.pendingEvents(player) {
		sv.Events = append(sv.Events, eventView(e))
	}
	return sv
}
