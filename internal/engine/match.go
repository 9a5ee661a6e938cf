package engine

import (
	"fmt"

	"github.com/rkatz/tcgsim/internal/log"
)

// NoWinner / DrawResult are the sentinel values Match.Winner takes before
// the match ends and when it ends in a draw (both players' active
// characters simultaneously lose all characters, or the round limit is
// reached with neither side fully defeated — spec.md §9 Open Question #1,
// resolved in DESIGN.md as a draw rather than sudden-death).
const (
	NoWinner   = -1
	DrawResult = -2
)

// Match is the whole deterministic simulation state: one instance per
// game, fully snapshot-able (see snapshot.go). Grounded on the teacher's
// Duel (internal/game/duel.go) and original_source's Match (server/match.py),
// generalizing Duel's single linear turn loop into the explicit state
// machine + action-queue-stack architecture spec.md §4.1 requires.
type Match struct {
	Config  Config
	catalog *Catalog

	Tables [2]*PlayerTable

	CurrentPlayer   int // whose turn/priority it currently is
	FirstPlayer     int // who acts first this round
	RoundNumber     int
	State           MatchState

	// firstToDeclare is whichever player declared round end first this
	// round, or -1 before either has. Determines next round's FirstPlayer
	// (spec.md §8 scenario S5); reset each StateRoundStart.
	firstToDeclare int

	queue    []ActionFrame // stack of frames; top = last element
	requests []Request

	Winner int

	rng    *RNG
	system *systemHandler

	Logger log.EventLogger

	rerollsRemaining [2]int
}

// NewMatch constructs a Match ready for Start. cfg is normalized in place.
func NewMatch(cfg Config, catalog *Catalog, seed int64, logger log.EventLogger) *Match {
	cfg.Normalize()
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	m := &Match{
		Config:         cfg,
		catalog:        catalog,
		State:          StateWaiting,
		Winner:         NoWinner,
		rng:            NewRNG(seed),
		system:         newSystemHandler(),
		Logger:         logger,
		firstToDeclare: -1,
	}
	m.Tables[0] = &PlayerTable{PlayerID: 0, ActiveIndex: -1}
	m.Tables[1] = &PlayerTable{PlayerID: 1, ActiveIndex: -1}
	return m
}

// CatalogFor exposes the match's catalog to card Play closures, which
// need it to spawn weapon/support/status hosts by factory key.
func (m *Match) CatalogFor() *Catalog {
	return m.catalog
}

// SetDeck installs one player's deck (catalog card IDs) and characters
// (catalog keys), matching original_source's Match.set_deck.
func (m *Match) SetDeck(player int, characterKeys []string, cardIDs []int) error {
	t := m.Tables[player]
	t.Characters = t.Characters[:0]
	for _, key := range characterKeys {
		def, ok := m.catalog.Character(key)
		if !ok {
			return fmt.Errorf("engine: unknown character %q", key)
		}
		t.Characters = append(t.Characters, NewCharacterDefState(def))
	}
	for _, id := range cardIDs {
		if _, ok := m.catalog.Card(id); !ok {
			return fmt.Errorf("engine: unknown card id %d", id)
		}
	}
	t.Deck = append([]int(nil), cardIDs...)
	return nil
}

func (m *Match) log(e log.GameEvent) {
	e.Round = m.RoundNumber
	if e.State == "" {
		e.State = m.State.String()
	}
	m.Logger.Log(e)
}

// pushFrame pushes a new FIFO frame onto the action-queue stack, making it
// the next source of actions to apply (spec.md §4.1: "new handler outputs
// pushed as a new frame on top; frames drain depth-first").
func (m *Match) pushFrame(frame ActionFrame) {
	if len(frame) == 0 {
		return
	}
	cp := append(ActionFrame(nil), frame...)
	m.queue = append(m.queue, cp)
}

// popAction pops the next action to apply: the front of the top frame,
// discarding any frames that have been fully drained.
func (m *Match) popAction() (Action, bool) {
	for len(m.queue) > 0 {
		top := len(m.queue) - 1
		a, ok := m.queue[top].Pop()
		if !ok {
			m.queue = m.queue[:top]
			continue
		}
		return a, true
	}
	return Action{}, false
}

func (m *Match) hasQueuedActions() bool {
	for i := len(m.queue) - 1; i >= 0; i-- {
		if len(m.queue[i]) > 0 {
			return true
		}
	}
	return false
}

// Start validates configuration and decks, transitions WAITING -> STARTING,
// and performs initial setup (first-player roll, deck shuffle, initial
// draw), matching original_source's Match.start.
func (m *Match) Start() error {
	if m.State != StateWaiting {
		return fmt.Errorf("engine: Start called outside WAITING state")
	}
	if err := m.Config.Check(); err != nil {
		return err
	}
	for p := 0; p < 2; p++ {
		if len(m.Tables[p].Characters) != m.Config.CharacterNumber {
			return fmt.Errorf("engine: player %d must field exactly %d characters", p, m.Config.CharacterNumber)
		}
		if len(m.Tables[p].Deck) != m.Config.CardNumber {
			return fmt.Errorf("engine: player %d deck must have exactly %d cards", p, m.Config.CardNumber)
		}
	}

	m.FirstPlayer = 0
	if m.Config.RandomFirstPlayer {
		m.FirstPlayer = m.rng.Intn(2)
	}
	m.CurrentPlayer = m.FirstPlayer

	for p := 0; p < 2; p++ {
		t := m.Tables[p]
		m.rng.Shuffle(len(t.Deck), func(i, j int) { t.Deck[i], t.Deck[j] = t.Deck[j], t.Deck[i] })
	}

	m.State = StateStarting
	m.log(log.NewPhaseChangeEvent(m.RoundNumber, m.State.String()))

	for p := 0; p < 2; p++ {
		t := m.Tables[p]
		n := min(m.Config.InitialHandSize, len(t.Deck))
		t.Hand = append(t.Hand, t.Deck[len(t.Deck)-n:]...)
		t.Deck = t.Deck[:len(t.Deck)-n]
		m.log(log.NewDrawCardEvent(m.RoundNumber, p, n))
	}

	m.State = StateStartingCardSwitch
	m.log(log.NewPhaseChangeEvent(m.RoundNumber, m.State.String()))
	for p := 0; p < 2; p++ {
		m.requests = append(m.requests, Request{
			Type:           RequestSwitchCard,
			Player:         p,
			HandCandidates: allIndices(len(m.Tables[p].Hand)),
		})
	}
	return nil
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Step advances the match by one unit of work: if runContinuously is
// false, Step applies at most one action or phase transition and returns;
// if true, it keeps advancing until the match needs external input
// (pending requests) or has ended. Precedence each iteration (spec.md
// §4.1): end-condition check, then outstanding-requests check, then
// pop-and-apply one action from the top queue frame, then phase
// transition.
func (m *Match) Step(runContinuously bool) error {
	for {
		if m.State == StateEnded || m.State == StateError {
			return nil
		}
		if m.checkEndCondition() {
			return nil
		}
		if m.HasPendingRequests() {
			return nil
		}
		if a, ok := m.popAction(); ok {
			if err := m.applyAction(a); err != nil {
				m.State = StateError
				m.log(log.NewErrorEvent(m.RoundNumber, err.Error()))
				return err
			}
			if !runContinuously {
				return nil
			}
			continue
		}
		advanced, err := m.transition()
		if err != nil {
			m.State = StateError
			m.log(log.NewErrorEvent(m.RoundNumber, err.Error()))
			return err
		}
		if !runContinuously {
			return nil
		}
		if !advanced {
			return nil
		}
	}
}

func (m *Match) checkEndCondition() bool {
	if m.State == StateEnded {
		return true
	}
	p0Dead := m.Tables[0].AllDefeated()
	p1Dead := m.Tables[1].AllDefeated()
	if !p0Dead && !p1Dead {
		return false
	}
	switch {
	case p0Dead && p1Dead:
		m.Winner = DrawResult
	case p0Dead:
		m.Winner = 1
	default:
		m.Winner = 0
	}
	m.State = StateEnded
	m.log(log.NewWinEvent(m.RoundNumber, m.Winner))
	return true
}
