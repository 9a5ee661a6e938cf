package engine

// Config bundles the match-wide tunables validated at Start (spec.md §2).
// Sentinel rule for the int fields: zero means "use the struct default",
// -1 means "no limit", any other positive value is taken literally.
// Grounded on original_source's MatchConfig (server/match.py) and the
// teacher's DuelConfig (internal/game/duel.go).
type Config struct {
	RandomFirstPlayer      bool
	InitialHandSize        int
	InitialCardDraw        int
	InitialDiceNumber      int
	InitialDiceRerollTimes int
	CardNumber             int
	MaxSameCardNumber      int
	CharacterNumber        int
	MaxRoundNumber         int
	MaxHandSize            int
	MaxDiceNumber          int
	MaxSummonNumber        int
	MaxSupportNumber       int
}

// DefaultConfig matches original_source's MatchConfig defaults.
func DefaultConfig() Config {
	return Config{
		RandomFirstPlayer:      true,
		InitialHandSize:        5,
		InitialCardDraw:        2,
		InitialDiceNumber:      8,
		InitialDiceRerollTimes: 1,
		CardNumber:             30,
		MaxSameCardNumber:      2,
		CharacterNumber:        3,
		MaxRoundNumber:         15,
		MaxHandSize:            10,
		MaxDiceNumber:          16,
		MaxSummonNumber:        4,
		MaxSupportNumber:       4,
	}
}

// resolveLimit applies Config's sentinel rule: 0 => fall back
// to def, -1 => unlimited (represented as a very large int so callers can
// keep using plain comparisons), anything else is literal.
func resolveLimit(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 1 << 30
	default:
		return v
	}
}

// Normalize fills zero fields with defaults and turns negative fields into
// the unlimited sentinel, in place, per the sentinel rule documented on
// Config.
func (c *Config) Normalize() {
	d := DefaultConfig()
	c.InitialHandSize = resolveLimit(c.InitialHandSize, d.InitialHandSize)
	c.InitialCardDraw = resolveLimit(c.InitialCardDraw, d.InitialCardDraw)
	c.InitialDiceNumber = resolveLimit(c.InitialDiceNumber, d.InitialDiceNumber)
	c.InitialDiceRerollTimes = resolveLimit(c.InitialDiceRerollTimes, d.InitialDiceRerollTimes)
	c.CardNumber = resolveLimit(c.CardNumber, d.CardNumber)
	c.MaxSameCardNumber = resolveLimit(c.MaxSameCardNumber, d.MaxSameCardNumber)
	c.CharacterNumber = resolveLimit(c.CharacterNumber, d.CharacterNumber)
	c.MaxRoundNumber = resolveLimit(c.MaxRoundNumber, d.MaxRoundNumber)
	c.MaxHandSize = resolveLimit(c.MaxHandSize, d.MaxHandSize)
	c.MaxDiceNumber = resolveLimit(c.MaxDiceNumber, d.MaxDiceNumber)
	c.MaxSummonNumber = resolveLimit(c.MaxSummonNumber, d.MaxSummonNumber)
	c.MaxSupportNumber = resolveLimit(c.MaxSupportNumber, d.MaxSupportNumber)
}

// Check validates the config the way original_source's check_config does:
// structural constraints that must hold regardless of the sentinel rule.
func (c Config) Check() error {
	if c.CharacterNumber <= 0 {
		return errInvalidConfig("character_number must be positive")
	}
	if c.CardNumber < c.CharacterNumber {
		return errInvalidConfig("card_number must be at least character_number")
	}
	if c.MaxSameCardNumber <= 0 {
		return errInvalidConfig("max_same_card_number must be positive")
	}
	return nil
}

type errInvalidConfig string

func (e errInvalidConfig) Error() string { return "invalid config: " + string(e) }

// Die is one rolled or produced die.
type Die struct {
	Color DieColor
}

// Skill is one usable skill slot on a character (spec.md §4.4). Costs are
// computed fresh from BaseCost via value_modifier_COST on demand, so Skill
// itself only stores the immutable base.
type Skill struct {
	Name     string
	Type     SkillType
	BaseCost DiceCostValue
	// DamageType is the elemental type the skill's damage carries;
	// ElementPhysical for normal attacks without an infused element.
	DamageType Element
	// BaseDamage is the skill's listed damage before modifiers.
	BaseDamage int
}

// CharacterState is the live, mutable state of one character on the table.
// Grounded on the teacher's CardInstance (internal/game/types.go) but
// replaces ATK/DEF with HP/MaxHP/Charge/Aura, since this domain's combat
// resource model is HP-and-elemental rather than stat-comparison.
type CharacterState struct {
	CatalogKey string // registry lookup key, e.g. "mona"
	Name       string

	MaxHP int
	HP    int

	MaxCharge int
	Charge    int

	Element Element // the character's own elemental affinity (for tuning)
	Aura    Element // ElementNone if no aura applied from incoming damage

	Skills []Skill

	Alive  bool
	Weapon EffectHost
	Artifact EffectHost
	Talent   EffectHost
	Statuses []EffectHost // oldest first

	pos Position
}

func (c *CharacterState) Pos() Position      { return c.pos }
func (c *CharacterState) SetPos(p Position)  { c.pos = p }

// Defeated reports whether this character has been reduced to 0 HP.
func (c *CharacterState) Defeated() bool {
	return !c.Alive
}

// PlayerTable is one player's half of the match (spec.md §3). Object
// positions within each slice are stable across the match except for
// explicit remove/insert actions, matching the teacher's Player zones
// (internal/game/state.go) generalized from fixed 5-slot arrays to
// variably-sized slices sized by Config.
type PlayerTable struct {
	PlayerID int

	Characters     []*CharacterState
	ActiveIndex    int // index into Characters of the currently active one

	Deck []int // catalog keys remaining, index 0 is top
	Hand []int // catalog keys in hand

	Dice []Die

	Summons  []EffectHost
	Supports []EffectHost

	TeamStatuses []EffectHost // statuses attached to the team, not one character

	DeclaredRoundEnd bool
	DiceRerollUsed   bool
}

// Active returns the currently active character, or nil if none alive.
func (t *PlayerTable) Active() *CharacterState {
	if t.ActiveIndex < 0 || t.ActiveIndex >= len(t.Characters) {
		return nil
	}
	return t.Characters[t.ActiveIndex]
}

// AliveCharacters reports how many characters on this table are not defeated.
func (t *PlayerTable) AliveCharacters() int {
	n := 0
	for _, c := range t.Characters {
		if c.Alive {
			n++
		}
	}
	return n
}

// AllDefeated reports whether every character on this table is defeated
// (the win condition checked at the top of every step() call, spec §4.1).
func (t *PlayerTable) AllDefeated() bool {
	return t.AliveCharacters() == 0
}

// NextAliveIndex returns the index of the next alive character after
// `from`, wrapping around, for the canonical traversal order (spec §4.2)
// and for forced-switch resolution after a defeat. Returns -1 if none alive.
func (t *PlayerTable) NextAliveIndex(from int) int {
	n := len(t.Characters)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.Characters[idx].Alive {
			return idx
		}
	}
	return -1
}
