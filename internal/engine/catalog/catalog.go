// Package catalog provides a small, explicitly partial roster of
// characters and cards sufficient to drive the engine's scenario tests.
// spec.md scopes the complete card/character catalog out of the engine
// itself (it defines only the effect host protocol), so this package is
// the engine's one concrete, swappable content pack rather than part of
// its core.
package catalog

import (
	"sync/atomic"

	"github.com/rkatz/tcgsim/internal/engine"
)

var nextID int64

func newID() int {
	return int(atomic.AddInt64(&nextID, 1))
}

// cardID values are stable across a process run; they only need to be
// unique within one Catalog instance.
const (
	CardKindling       = 1 // event: deal 1 Pyro damage
	CardLiyueHarbor    = 2 // support: draw 1 card every round end, 2 uses
	CardRecklessTune   = 3 // event: draw 2 cards
	CardTravelersHandy = 4 // weapon: +1 flat damage while equipped
)

// DefaultConfig returns an engine.Config sized to this catalog's four
// card definitions (card_number must be reachable under
// max_same_card_number with only four distinct cards to draw from),
// rather than original_source's full 30-card/2-copy tournament default.
func DefaultConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.CardNumber = 8 // 2 copies each of Kindling/LiyueHarbor/RecklessTune/TravelersHandy
	cfg.MaxSameCardNumber = 2
	return cfg
}

// DefaultDeck returns character keys and a legal card list for one player
// using every card this catalog registers, evenly split.
func DefaultDeck() (characterKeys []string, cardIDs []int) {
	characterKeys = []string{"fischl", "mona", "nahida"}
	ids := []int{CardKindling, CardLiyueHarbor, CardRecklessTune, CardTravelersHandy}
	for _, id := range ids {
		cardIDs = append(cardIDs, id, id)
	}
	return characterKeys, cardIDs
}

// Build returns a Catalog populated with three characters spanning
// Electro/Hydro/Dendro (Fischl, Mona, Nahida) and a handful of action
// cards, enough to exercise normal attack / elemental skill / elemental
// burst, a weapon, a support with an internal usage counter, and a talent-
// free event card.
func Build() *engine.Catalog {
	c := engine.NewCatalog()

	registerCharacters(c)
	registerCards(c)
	registerHostFactories(c)

	return c
}
