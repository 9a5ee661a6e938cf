// Package httpapi exposes engine.Match over HTTP/WebSocket, adapted from
// the teacher's internal/web (net/http + coder/websocket), replacing its
// browser-facing duel UI with a JSON request/response surface for the
// engine's Match/Request/Response protocol.
package httpapi

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rkatz/tcgsim/internal/agent"
	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/engine/catalog"
	"github.com/rkatz/tcgsim/internal/log"
)

// Session owns one Match and the event cursor each connected player has
// already been sent, analogous to the teacher's per-connection TCP
// session in internal/net, generalized to two WebSocket peers sharing one
// Match instance instead of one PlayerController per TCP connection.
type Session struct {
	ID     string
	mu     sync.Mutex
	Match  *engine.Match
	logger *log.MemoryLogger
	sent   [2]int // events already delivered to each player's socket
}

// NewSessionRequest is the POST /api/matches request body.
type NewSessionRequest struct {
	DeckText [2]string `json:"deck_text"`
	Seed     int64     `json:"seed"`
}

// NewSession parses both decks and starts a fresh Match using the example
// catalog's default Config.
func NewSession(req NewSessionRequest) (*Session, error) {
	return NewSessionWithConfig(req, catalog.DefaultConfig())
}

// NewSessionWithConfig is like NewSession but uses the supplied Config
// (e.g. one loaded from YAML by the tcgx-http entrypoint) instead of the
// catalog's built-in default.
func NewSessionWithConfig(req NewSessionRequest, cfg engine.Config) (*Session, error) {
	cat := catalog.Build()
	logger := log.NewMemoryLogger()
	seed := req.Seed
	if seed == 0 {
		id := uuid.New()
		seed = int64(binary.LittleEndian.Uint64(id[:8]))
	}
	m := engine.NewMatch(cfg, cat, seed, logger)

	for p := 0; p < 2; p++ {
		deck, err := engine.ParseDeckText(strings.NewReader(req.DeckText[p]), cat)
		if err != nil {
			return nil, fmt.Errorf("httpapi: parse player %d deck: %w", p, err)
		}
		if err := engine.ValidateDeckText(deck, cfg); err != nil {
			return nil, fmt.Errorf("httpapi: player %d deck invalid: %w", p, err)
		}
		if err := m.SetDeck(p, deck.CharacterKeys, deck.CardIDs); err != nil {
			return nil, fmt.Errorf("httpapi: set player %d deck: %w", p, err)
		}
	}
	if err := m.Start(); err != nil {
		return nil, fmt.Errorf("httpapi: start: %w", err)
	}
	if err := m.Step(true); err != nil {
		return nil, fmt.Errorf("httpapi: initial step: %w", err)
	}

	return &Session{ID: uuid.NewString(), Match: m, logger: logger}, nil
}

// pendingEvents returns events logged since player last polled/received a
// message over their socket.
func (s *Session) pendingEvents(player int) []log.GameEvent {
	all := s.logger.Events()
	fresh := all[s.sent[player]:]
	s.sent[player] = len(all)
	return fresh
}

// applyCommand parses one spec.md §6 command line for player, applies it
// via Match.Respond, and drains the match forward (Step) until it needs
// input again or ends. Must be called with s.mu held.
func (s *Session) applyCommand(player int, command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("httpapi: empty command")
	}
	reqs := s.Match.PendingRequests(player)
	if len(reqs) == 0 {
		return fmt.Errorf("httpapi: player %d has no pending request", player)
	}
	resp, err := agent.ParseCommand(player, reqs, fields)
	if err != nil {
		return err
	}
	if err := s.Match.Respond(resp); err != nil {
		return err
	}
	return s.Match.Step(true)
}
