// Package mcp exposes one engine.Match as a Model Context Protocol tool
// surface (github.com/mark3labs/mcp-go), adapted from the teacher's
// internal/mcp, which did the same for its own game.Duel. Where the
// teacher bridged Claude to a human opponent over a raw TCP connection
// (internal/net), this adaptation drives the opponent in-process with an
// agent.Agent — simplifying "one live game per process" down to "one
// Claude-vs-agent match per process" while keeping the same tool-call
// shape: start, submit one command, inspect state, repeat until GameOver.
package mcp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rkatz/tcgsim/internal/agent"
	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/engine/catalog"
	"github.com/rkatz/tcgsim/internal/log"
)

// MatchSession holds the state of a single MCP-driven match: one seat is
// answered by tool calls, the other by an in-process agent.Agent.
type MatchSession struct {
	mu sync.Mutex

	match        *engine.Match
	logger       *log.MemoryLogger
	claudePlayer int
	opponent     agent.Agent
	catalog      *engine.Catalog

	drained int // events already reported to a prior tool call
}

// activeSession is the singleton match (one per stdio process), matching
// the teacher's single-active-game assumption.
var activeSession *MatchSession

// NewMatchSession parses both decks (spec.md §6 deck text grammar),
// builds a Match against the example catalog, and starts it.
func NewMatchSession(claudePlayer int, deckText0, deckText1 string, seed int64) (*MatchSession, error) {
	if claudePlayer != 0 && claudePlayer != 1 {
		return nil, fmt.Errorf("mcp: claude_player must be 0 or 1")
	}
	cat := catalog.Build()
	cfg := catalog.DefaultConfig()
	logger := log.NewMemoryLogger()
	m := engine.NewMatch(cfg, cat, seed, logger)

	texts := [2]string{deckText0, deckText1}
	for p := 0; p < 2; p++ {
		deck, err := engine.ParseDeckText(strings.NewReader(texts[p]), cat)
		if err != nil {
			return nil, fmt.Errorf("mcp: parse player %d deck: %w", p, err)
		}
		if err := engine.ValidateDeckText(deck, cfg); err != nil {
			return nil, fmt.Errorf("mcp: player %d deck invalid: %w", p, err)
		}
		if err := m.SetDeck(p, deck.CharacterKeys, deck.CardIDs); err != nil {
			return nil, fmt.Errorf("mcp: set player %d deck: %w", p, err)
		}
	}
	if err := m.Start(); err != nil {
		return nil, fmt.Errorf("mcp: start: %w", err)
	}

	sess := &MatchSession{
		match:        m,
		logger:       logger,
		claudePlayer: claudePlayer,
		opponent:     agent.NoOpAgent{},
		catalog:      cat,
	}
	if err := sess.advance(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MatchSession) opponentPlayer() int { return 1 - s.claudePlayer }

// advance drains the match (Step + opponent auto-answers) until either
// the match ends or Claude's seat has a pending request.
func (s *MatchSession) advance() error {
	for i := 0; i < 100000; i++ {
		if err := s.match.Step(true); err != nil {
			return fmt.Errorf("mcp: step: %w", err)
		}
		if s.match.State == engine.StateEnded {
			return nil
		}
		if len(s.match.PendingRequests(s.claudePlayer)) > 0 {
			return nil
		}
		if len(s.match.PendingRequests(s.opponentPlayer())) > 0 {
			if err := s.opponent.Decide(s.match, s.opponentPlayer()); err != nil {
				return fmt.Errorf("mcp: opponent decide: %w", err)
			}
			continue
		}
		// Neither seat has a request and Step made no further progress:
		// nothing left to do until Claude submits a command.
		return nil
	}
	return fmt.Errorf("mcp: match did not settle within the step budget")
}

// newEvents returns events logged since the last call, for inclusion in
// the next tool response (mirrors the teacher's drainEvents).
func (s *MatchSession) newEvents() []log.GameEvent {
	all := s.logger.Events()
	fresh := all[s.drained:]
	s.drained = len(all)
	return fresh
}

func eventSummaries(events []log.GameEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = log.FormatEvent(e)
	}
	return out
}
