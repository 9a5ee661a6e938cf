package catalog

import "github.com/rkatz/tcgsim/internal/engine"

// liyueHarborHost is Liyue Harbor Wharf: a support that draws its owner a
// card at every round end, 2 uses total, then removes itself (spec.md §8
// scenario S4: two round-end declarations grow the owner's hand by
// exactly 2 and deplete the support). BaseHost's own usage counter is the
// support's full state, so it needs nothing beyond that.
type liyueHarborHost struct {
	engine.BaseHost
	owner int
}

func newLiyueHarborHost(id int) engine.EffectHost {
	h := &liyueHarborHost{BaseHost: engine.NewBaseHostFrom(id, "Liyue Harbor Wharf", "liyue_harbor")}
	h.SetUsage(2)
	h.Events = engine.EventTable{
		engine.EventRoundEnd: h.onRoundEnd,
	}
	return h
}

// SetOwner binds the support to the player who played it, needed both at
// creation and when Restore reconstructs it from a Snapshot.
func (h *liyueHarborHost) SetOwner(player int) {
	h.owner = player
}

func (h *liyueHarborHost) onRoundEnd(m *engine.Match, host engine.EffectHost, e engine.Event) engine.ActionFrame {
	h.SetUsage(h.Usage() - 1)
	frame := engine.ActionFrame{{Type: engine.ActionDrawCard, Player: h.owner, Count: 1, Desc: "Liyue Harbor Wharf"}}
	if h.Usage() <= 0 {
		frame = append(frame, engine.Action{
			Type:       engine.ActionRemoveObject,
			Player:     h.owner,
			Object:     host,
			ObjectArea: engine.AreaSupport,
			Desc:       "Liyue Harbor Wharf depleted",
		})
	}
	return frame
}

// travelersHandyHost is a weapon granting +1 flat damage to every damage
// value whose SourcePlayer is its owning player while equipped — a minimal
// ValueDamageIncrease modifier, unlimited usage. DamageValue carries no
// source character, so the bonus is not limited to the bearer's own damage.
type travelersHandyHost struct {
	engine.BaseHost
	ownerPlayer    int
	characterIndex int
}

func newTravelersHandyHost(id int) engine.EffectHost {
	h := &travelersHandyHost{BaseHost: engine.NewBaseHostFrom(id, "Traveler's Handy Sword", "travelers_handy")}
	h.Values = engine.ValueTable{
		engine.ValueDamageIncrease: h.onDamageIncrease,
	}
	return h
}

func (h *travelersHandyHost) onDamageIncrease(m *engine.Match, host engine.EffectHost, mode engine.ValueMode, v engine.Value) engine.Value {
	if v.DamMod.Base.SourcePlayer != h.ownerPlayer {
		return v
	}
	v.DamMod.Amount++
	return v
}

// SetOwner binds the weapon to the character that equipped it, called
// once when the weapon is attached and again when Restore reconstructs it
// from a Snapshot (the HostFactories signature only takes an object ID, so
// owner context is threaded in separately via this optional setter).
func (h *travelersHandyHost) SetOwner(player, characterIndex int) {
	h.ownerPlayer = player
	h.characterIndex = characterIndex
}
