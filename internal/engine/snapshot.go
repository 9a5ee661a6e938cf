package engine

import "fmt"

// HostSnapshot records enough to reconstruct one EffectHost via the
// catalog's factory: which factory built it, its object ID, usage count,
// and stable position.
type HostSnapshot struct {
	FactoryKey string
	ObjID      int
	Usage      int
	Pos        Position
}

// CharacterSnapshot is the serializable form of CharacterState.
type CharacterSnapshot struct {
	CatalogKey string
	HP         int
	Charge     int
	Aura       Element
	Alive      bool
	Weapon     *HostSnapshot
	Artifact   *HostSnapshot
	Talent     *HostSnapshot
	Statuses   []HostSnapshot
}

// TableSnapshot is the serializable form of PlayerTable.
type TableSnapshot struct {
	ActiveIndex      int
	Characters       []CharacterSnapshot
	Deck             []int
	Hand             []int
	Dice             []DieColor
	Summons          []HostSnapshot
	Supports         []HostSnapshot
	TeamStatuses     []HostSnapshot
	DeclaredRoundEnd bool
	DiceRerollUsed   bool
}

// Snapshot is the fully serializable state of a Match: round/phase
// bookkeeping, both tables, the RNG state, outstanding requests, and the
// pending action-queue stack (spec.md property test #4: snapshot/restore
// round-trips including RNG state).
type Snapshot struct {
	Config          Config
	CurrentPlayer   int
	FirstPlayer     int
	FirstToDeclare  int
	RoundNumber     int
	State           MatchState
	Winner          int
	RerollsLeft     [2]int
	RNGState0       uint64
	RNGState1       uint64
	Tables          [2]TableSnapshot
	Requests        []Request
	Queue           []ActionFrame
}

func snapshotHost(h EffectHost) *HostSnapshot {
	if h == nil {
		return nil
	}
	return &HostSnapshot{FactoryKey: h.FactoryKey(), ObjID: h.ID(), Usage: h.Usage(), Pos: h.Pos()}
}

func snapshotHostList(hs []EffectHost) []HostSnapshot {
	out := make([]HostSnapshot, len(hs))
	for i, h := range hs {
		out[i] = *snapshotHost(h)
	}
	return out
}

// Snapshot captures the match's complete current state.
func (m *Match) Snapshot() Snapshot {
	s0, s1 := m.rng.State()
	snap := Snapshot{
		Config:         m.Config,
		CurrentPlayer:  m.CurrentPlayer,
		FirstPlayer:    m.FirstPlayer,
		FirstToDeclare: m.firstToDeclare,
		RoundNumber:    m.RoundNumber,
		State:         m.State,
		Winner:        m.Winner,
		RerollsLeft:   m.rerollsRemaining,
		RNGState0:     s0,
		RNGState1:     s1,
		Requests:      append([]Request(nil), m.requests...),
	}
	for _, frame := range m.queue {
		snap.Queue = append(snap.Queue, append(ActionFrame(nil), frame...))
	}
	for p := 0; p < 2; p++ {
		t := m.Tables[p]
		ts := TableSnapshot{
			ActiveIndex:      t.ActiveIndex,
			Deck:             append([]int(nil), t.Deck...),
			Hand:             append([]int(nil), t.Hand...),
			DeclaredRoundEnd: t.DeclaredRoundEnd,
			DiceRerollUsed:   t.DiceRerollUsed,
			Summons:          snapshotHostList(t.Summons),
			Supports:         snapshotHostList(t.Supports),
			TeamStatuses:     snapshotHostList(t.TeamStatuses),
		}
		for _, d := range t.Dice {
			ts.Dice = append(ts.Dice, d.Color)
		}
		for _, c := range t.Characters {
			cs := CharacterSnapshot{
				CatalogKey: c.CatalogKey,
				HP:         c.HP,
				Charge:     c.Charge,
				Aura:       c.Aura,
				Alive:      c.Alive,
				Weapon:     snapshotHost(c.Weapon),
				Artifact:   snapshotHost(c.Artifact),
				Talent:     snapshotHost(c.Talent),
				Statuses:   snapshotHostList(c.Statuses),
			}
			ts.Characters = append(ts.Characters, cs)
		}
		snap.Tables[p] = ts
	}
	return snap
}

// Restore replaces the match's entire state with the given Snapshot.
// catalog must be the same catalog (or one with identical keys) the
// Match was originally built against, since hosts are respawned from
// their factory keys rather than deep-cloned.
func (m *Match) Restore(snap Snapshot) error {
	m.Config = snap.Config
	m.CurrentPlayer = snap.CurrentPlayer
	m.FirstPlayer = snap.FirstPlayer
	m.firstToDeclare = snap.FirstToDeclare
	m.RoundNumber = snap.RoundNumber
	m.State = snap.State
	m.Winner = snap.Winner
	m.rerollsRemaining = snap.RerollsLeft
	m.rng.Restore(snap.RNGState0, snap.RNGState1)
	m.requests = append([]Request(nil), snap.Requests...)
	m.queue = nil
	for _, frame := range snap.Queue {
		m.queue = append(m.queue, append(ActionFrame(nil), frame...))
	}

	for p := 0; p < 2; p++ {
		ts := snap.Tables[p]
		t := &PlayerTable{
			PlayerID:         p,
			ActiveIndex:      ts.ActiveIndex,
			Deck:             append([]int(nil), ts.Deck...),
			Hand:             append([]int(nil), ts.Hand...),
			DeclaredRoundEnd: ts.DeclaredRoundEnd,
			DiceRerollUsed:   ts.DiceRerollUsed,
		}
		for _, c := range ts.Dice {
			t.Dice = append(t.Dice, Die{Color: c})
		}
		var err error
		if t.Summons, err = m.restoreHostList(ts.Summons); err != nil {
			return err
		}
		for _, h := range t.Summons {
			setHostOwner(h, p, -1)
		}
		if t.Supports, err = m.restoreHostList(ts.Supports); err != nil {
			return err
		}
		for _, h := range t.Supports {
			setHostOwner(h, p, -1)
		}
		if t.TeamStatuses, err = m.restoreHostList(ts.TeamStatuses); err != nil {
			return err
		}
		for _, h := range t.TeamStatuses {
			setHostOwner(h, p, -1)
		}
		for _, cs := range ts.Characters {
			def, ok := m.catalog.Character(cs.CatalogKey)
			if !ok {
				return fmt.Errorf("engine: restore: unknown character %q", cs.CatalogKey)
			}
			c := NewCharacterDefState(def)
			c.HP = cs.HP
			c.Charge = cs.Charge
			c.Aura = cs.Aura
			c.Alive = cs.Alive
			charIdx := len(t.Characters)
			if cs.Weapon != nil {
				if c.Weapon, err = m.restoreHost(*cs.Weapon); err != nil {
					return err
				}
				setHostOwner(c.Weapon, p, charIdx)
			}
			if cs.Artifact != nil {
				if c.Artifact, err = m.restoreHost(*cs.Artifact); err != nil {
					return err
				}
				setHostOwner(c.Artifact, p, charIdx)
			}
			if cs.Talent != nil {
				if c.Talent, err = m.restoreHost(*cs.Talent); err != nil {
					return err
				}
				setHostOwner(c.Talent, p, charIdx)
			}
			if c.Statuses, err = m.restoreHostList(cs.Statuses); err != nil {
				return err
			}
			t.Characters = append(t.Characters, c)
		}
		m.Tables[p] = t
	}
	return nil
}

// setHostOwner binds owner context on hosts that declare an optional
// SetOwner method, used by character-scoped hosts (SetOwner(player,
// characterIndex)) and team/support-scoped hosts (SetOwner(player)).
// Hosts that don't need owner context (e.g. stateless statuses) simply
// don't implement either signature and this is a no-op.
func setHostOwner(h EffectHost, player, characterIndex int) {
	if s, ok := h.(interface{ SetOwner(int, int) }); ok {
		s.SetOwner(player, characterIndex)
		return
	}
	if s, ok := h.(interface{ SetOwner(int) }); ok {
		s.SetOwner(player)
	}
}

func (m *Match) restoreHost(s HostSnapshot) (EffectHost, error) {
	h, ok := m.catalog.SpawnHost(s.FactoryKey, s.ObjID)
	if !ok {
		return nil, fmt.Errorf("engine: restore: unknown host factory %q", s.FactoryKey)
	}
	if bh, ok := h.(interface{ SetUsage(int) }); ok {
		bh.SetUsage(s.Usage)
	}
	h.SetPos(s.Pos)
	return h, nil
}

func (m *Match) restoreHostList(snaps []HostSnapshot) ([]EffectHost, error) {
	out := make([]EffectHost, 0, len(snaps))
	for _, s := range snaps {
		h, err := m.restoreHost(s)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
