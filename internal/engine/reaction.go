package engine

// reactionEntry describes what a reaction does beyond raw damage: an
// additive damage bonus, a forced switch (Overloaded), which auras (if
// any) get consumed/replaced on the target, and any splash damage the
// engine must append to the target's other characters (ElectroCharged,
// Superconduct, Swirl).
type reactionEntry struct {
	Reaction     Reaction
	Bonus        int
	Overload     bool
	SwirlInto    []Element // Swirl spreads the swirled aura element to the target's other characters
	SplashDamage int       // flat piercing damage applied to every other character on the target's side
	SplashType   Element   // damage type used for SplashDamage (SwirlInto carries its own element instead)
}

// reactionTable is keyed by (persisted aura, incoming element); order of
// the two keys matters only for lookup, not for the reaction identity.
// Grounded on spec.md §4.3's reaction table and original_source's reaction
// handling (object_base.py / status base referenced in _INDEX.md).
var reactionTable = map[[2]Element]reactionEntry{
	{ElementHydro, ElementPyro}:    {Reaction: ReactionVaporize, Bonus: 2},
	{ElementPyro, ElementHydro}:    {Reaction: ReactionVaporize, Bonus: 2},
	{ElementPyro, ElementCryo}:     {Reaction: ReactionMelt, Bonus: 2},
	{ElementCryo, ElementPyro}:     {Reaction: ReactionMelt, Bonus: 2},
	{ElementHydro, ElementElectro}: {Reaction: ReactionElectroCharged, Bonus: 1, SplashDamage: 1, SplashType: ElementPhysical},
	{ElementElectro, ElementHydro}: {Reaction: ReactionElectroCharged, Bonus: 1, SplashDamage: 1, SplashType: ElementPhysical},
	{ElementPyro, ElementElectro}:  {Reaction: ReactionOverloaded, Bonus: 2, Overload: true},
	{ElementElectro, ElementPyro}:  {Reaction: ReactionOverloaded, Bonus: 2, Overload: true},
	{ElementCryo, ElementElectro}:  {Reaction: ReactionSuperconduct, Bonus: 1, SplashDamage: 1, SplashType: ElementPhysical},
	{ElementElectro, ElementCryo}:  {Reaction: ReactionSuperconduct, Bonus: 1, SplashDamage: 1, SplashType: ElementPhysical},
	{ElementCryo, ElementHydro}:    {Reaction: ReactionFrozen, Bonus: 1},
	{ElementHydro, ElementCryo}:    {Reaction: ReactionFrozen, Bonus: 1},
	{ElementDendro, ElementHydro}:  {Reaction: ReactionBloom, Bonus: 1},
	{ElementHydro, ElementDendro}:  {Reaction: ReactionBloom, Bonus: 1},
	{ElementDendro, ElementElectro}: {Reaction: ReactionQuicken, Bonus: 1},
	{ElementElectro, ElementDendro}: {Reaction: ReactionQuicken, Bonus: 1},
	{ElementDendro, ElementPyro}:    {Reaction: ReactionBurning, Bonus: 1},
	{ElementPyro, ElementDendro}:    {Reaction: ReactionBurning, Bonus: 1},
}

// swirlCarriers lists the auras that react with Anemo (Swirl) and with Geo
// (Crystallize): any of the four "core" elements, whichever is persisted.
var swirlCarriers = map[Element]bool{
	ElementCryo: true, ElementPyro: true, ElementHydro: true, ElementElectro: true,
}

// resolveReaction determines the reaction (if any) triggered when
// incoming carries `incoming` onto a character whose current aura is
// `aura`. Returns ReactionNone, the unmodified aura, if no reaction fires,
// in which case the caller persists `incoming` as the new aura when
// `incoming.Persistable()`.
func resolveReaction(aura Element, incoming Element) (reactionEntry, Element) {
	if incoming == ElementAnemo && swirlCarriers[aura] {
		// Swirl has no direct damage bonus (spec.md §4.3); the only extra
		// damage is the splash to the other characters, carrying the
		// swirled element.
		return reactionEntry{Reaction: ReactionSwirl, Bonus: 0, SwirlInto: []Element{aura}}, ElementNone
	}
	if incoming == ElementGeo && swirlCarriers[aura] {
		return reactionEntry{Reaction: ReactionCrystallize, Bonus: 1}, ElementNone
	}
	if entry, ok := reactionTable[[2]Element{aura, incoming}]; ok {
		return entry, ElementNone
	}
	return reactionEntry{}, aura
}
