package catalog

import "github.com/rkatz/tcgsim/internal/engine"

func registerHostFactories(c *engine.Catalog) {
	c.RegisterHostFactory("liyue_harbor", newLiyueHarborHost)
	c.RegisterHostFactory("travelers_handy", newTravelersHandyHost)
}

// registerCards installs the small action-card set: one event that deals
// flat Pyro damage, one event that draws cards, one weapon, and one
// support with a self-depleting usage counter (spec.md §7 scenario S4).
func registerCards(c *engine.Catalog) {
	c.RegisterCard(engine.CardDef{
		ID:   CardKindling,
		Name: "Kindling",
		Kind: engine.CardKindEvent,
		Cost: engine.DiceCostValue{ElementalColor: engine.DieOmni, AnyCount: 2},
		Play: func(m *engine.Match, player, handIndex int, targets []int) engine.ActionFrame {
			opp := m.Tables[1-player]
			if opp.ActiveIndex < 0 {
				return nil
			}
			return engine.ActionFrame{{
				Type:   engine.ActionMakeDamage,
				Player: player,
				DamageValues: []engine.DamageValue{{
					SourcePlayer:    player,
					TargetPlayer:    1 - player,
					TargetCharacter: opp.ActiveIndex,
					Damage:          1,
					DamageType:      engine.ElementPyro,
				}},
			}}
		},
	})

	c.RegisterCard(engine.CardDef{
		ID:   CardRecklessTune,
		Name: "Reckless Tuning",
		Kind: engine.CardKindEvent,
		Cost: engine.DiceCostValue{AnyCount: 1},
		Play: func(m *engine.Match, player, handIndex int, targets []int) engine.ActionFrame {
			return engine.ActionFrame{{Type: engine.ActionDrawCard, Player: player, Count: 2, Desc: "Reckless Tuning"}}
		},
	})

	c.RegisterCard(engine.CardDef{
		ID:   CardTravelersHandy,
		Name: "Traveler's Handy Sword",
		Kind: engine.CardKindWeapon,
		Cost: engine.DiceCostValue{AnyCount: 2},
		Play: func(m *engine.Match, player, handIndex int, targets []int) engine.ActionFrame {
			characterIndex := m.Tables[player].ActiveIndex
			if len(targets) > 0 {
				characterIndex = targets[0]
			}
			host, ok := m.CatalogFor().SpawnHost("travelers_handy", 0)
			if !ok {
				return nil
			}
			if setter, ok := host.(interface{ SetOwner(int, int) }); ok {
				setter.SetOwner(player, characterIndex)
			}
			return engine.ActionFrame{{
				Type:           engine.ActionCreateObject,
				Player:         player,
				CharacterIndex: characterIndex,
				ObjectArea:     engine.AreaWeapon,
				Object:         hostAsPositioned(host),
				Desc:           "equip Traveler's Handy Sword",
			}}
		},
	})

	c.RegisterCard(engine.CardDef{
		ID:   CardLiyueHarbor,
		Name: "Liyue Harbor Wharf",
		Kind: engine.CardKindSupport,
		Cost: engine.DiceCostValue{AnyCount: 2},
		Play: func(m *engine.Match, player, handIndex int, targets []int) engine.ActionFrame {
			host, ok := m.CatalogFor().SpawnHost("liyue_harbor", 0)
			if !ok {
				return nil
			}
			if setter, ok := host.(interface{ SetOwner(int) }); ok {
				setter.SetOwner(player)
			}
			return engine.ActionFrame{{
				Type:       engine.ActionCreateObject,
				Player:     player,
				ObjectArea: engine.AreaSupport,
				Object:     hostAsPositioned(host),
				Desc:       "play Liyue Harbor Wharf",
			}}
		},
	})
}

func hostAsPositioned(h engine.EffectHost) engine.Positioned {
	return h
}
