package catalog

import "github.com/rkatz/tcgsim/internal/engine"

// registerCharacters installs Fischl (Electro), Mona (Hydro), and Nahida
// (Dendro) — one per element family needed by the scenario tests (S1
// tuning targets a non-Hydro/non-Omni die; S2 needs an Electro-aura active
// character). Grounded on original_source's per-charactor package layout
// (server/charactor/hydro/mona.py et al., listed in _INDEX.md) generalized
// to this engine's declarative CharacterDef instead of a Python class per
// character.
func registerCharacters(c *engine.Catalog) {
	c.RegisterCharacter(engine.CharacterDef{
		Key:       "fischl",
		Name:      "Fischl",
		Element:   engine.ElementElectro,
		MaxHP:     10,
		MaxCharge: 3,
		Skills: []engine.Skill{
			{
				Name: "Bolts of Downfall", Type: engine.SkillNormalAttack,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieElectro, ElementalCount: 1, AnyCount: 2},
				DamageType: engine.ElementPhysical, BaseDamage: 2,
			},
			{
				Name: "Nightrider", Type: engine.SkillElemental,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieElectro, ElementalCount: 3},
				DamageType: engine.ElementElectro, BaseDamage: 3,
			},
			{
				Name: "Let There Be Glory", Type: engine.SkillBurst,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieElectro, ElementalCount: 4},
				DamageType: engine.ElementElectro, BaseDamage: 4,
			},
		},
	})

	c.RegisterCharacter(engine.CharacterDef{
		Key:       "mona",
		Name:      "Mona",
		Element:   engine.ElementHydro,
		MaxHP:     10,
		MaxCharge: 3,
		Skills: []engine.Skill{
			{
				Name: "Ripple of Fate", Type: engine.SkillNormalAttack,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieHydro, ElementalCount: 1, AnyCount: 2},
				DamageType: engine.ElementPhysical, BaseDamage: 1,
			},
			{
				Name: "Mirror Reflection of Doom", Type: engine.SkillElemental,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieHydro, ElementalCount: 3},
				DamageType: engine.ElementHydro, BaseDamage: 1,
			},
			{
				Name: "Stellaris Phantasm", Type: engine.SkillBurst,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieHydro, ElementalCount: 4},
				DamageType: engine.ElementHydro, BaseDamage: 4,
			},
		},
	})

	c.RegisterCharacter(engine.CharacterDef{
		Key:       "nahida",
		Name:      "Nahida",
		Element:   engine.ElementDendro,
		MaxHP:     10,
		MaxCharge: 3,
		Skills: []engine.Skill{
			{
				Name: "Akasha Pulse", Type: engine.SkillNormalAttack,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieDendro, ElementalCount: 1, AnyCount: 2},
				DamageType: engine.ElementPhysical, BaseDamage: 1,
			},
			{
				Name: "All Schemes to Know", Type: engine.SkillElemental,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieDendro, ElementalCount: 3},
				DamageType: engine.ElementDendro, BaseDamage: 1,
			},
			{
				Name: "Illusory Heart", Type: engine.SkillBurst,
				BaseCost:   engine.DiceCostValue{ElementalColor: engine.DieDendro, ElementalCount: 3},
				DamageType: engine.ElementDendro, BaseDamage: 4,
			},
		},
	})
}
