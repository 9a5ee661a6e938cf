package engine

// ValueType identifies which value_modifier_<TYPE> capability a handler
// subscribes to (spec.md §4.5). Generalizes the teacher's ATK/DEF
// StatModifier (internal/game/types.go) from "two fixed numeric fields"
// to "a named, ordered family of modifiable values".
type ValueType int

const (
	ValueReroll ValueType = iota
	ValueDiceCost
	ValueDamageIncrease
	ValueDamageMultiply
	ValueDamageDecrease
)

// RerollValue carries the number of reroll attempts a player is granted
// during ROUND_ROLL_DICE, adjusted by value_modifier_REROLL handlers
// (e.g. a support that grants an extra reroll).
type RerollValue struct {
	PlayerID int
	Times    int
}

// DamageValue is one element of MakeDamageAction.damage_value_list
// (spec.md §4.3). Heal is represented as negative Damage; pure
// application (status placement with no HP change) carries Damage 0.
type DamageValue struct {
	SourcePlayer    int
	TargetPlayer    int
	TargetCharacter int
	Damage          int
	DamageType      Element // ElementPhysical for non-elemental damage
	NoReaction      bool    // piercing/heal/pure damages never trigger reactions
}

// damageIncrease/Multiply/Decrease are the three ordered modifier passes
// the damage pipeline runs in sequence (spec.md §4.3 step 4). They are
// plain wrapper structs so handlers can distinguish "add 1 flat damage"
// from "multiply by 1.5" from "reduce by a shield" via the ValueType key,
// the same way the teacher distinguishes ATKMod from DEFMod by field name
// rather than by a shared numeric slot.
type DamageModifierValue struct {
	Base   DamageValue
	Amount int // flat add (increase/decrease) — decrease values are positive and subtracted
	Factor int // percent multiplier, 100 = unchanged; only meaningful for ValueDamageMultiply
}

// Value is the sum type every value_modifier_* capability accepts and
// returns. Exactly one field is meaningful, selected by the ValueType the
// handler registered under.
type Value struct {
	Type    ValueType
	Reroll  RerollValue
	Cost    DiceCostValue
	DamMod  DamageModifierValue
}
