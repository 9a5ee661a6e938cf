package engine

// dispatch walks every live object in the canonical traversal order (spec
// §4.2): current player's objects first, then the opponent's; within a
// player, characters starting from the active one and wrapping, then
// weapon -> artifact -> talent -> statuses (oldest first) per character;
// then summons, supports, team statuses; finally the system handler. Hand,
// dice and deck hold no hosts and are not visited.
// Each host whose EventHandlers table has an entry for e.Type gets a
// chance to push a new action frame; frames are appended to the match's
// queue stack in visitation order (spec §4.1: LIFO across frames).
func (m *Match) dispatch(e Event) {
	order := []int{m.CurrentPlayer, 1 - m.CurrentPlayer}
	for _, p := range order {
		t := m.Tables[p]
		m.dispatchPlayer(t, e)
	}
	if frame := m.fireHandler(m.system, e); len(frame) > 0 {
		m.pushFrame(frame)
	}
}

func (m *Match) dispatchPlayer(t *PlayerTable, e Event) {
	n := len(t.Characters)
	if n > 0 {
		start := t.ActiveIndex
		if start < 0 {
			start = 0
		}
		for i := 0; i < n; i++ {
			idx := (start + i) % n
			m.dispatchCharacter(t.Characters[idx], e)
		}
	}

	for _, h := range t.Summons {
		if frame := m.fireHandler(h, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
	for _, h := range t.Supports {
		if frame := m.fireHandler(h, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
	for _, h := range t.TeamStatuses {
		if frame := m.fireHandler(h, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
}

func (m *Match) dispatchCharacter(c *CharacterState, e Event) {
	if c.Weapon != nil {
		if frame := m.fireHandler(c.Weapon, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
	if c.Artifact != nil {
		if frame := m.fireHandler(c.Artifact, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
	if c.Talent != nil {
		if frame := m.fireHandler(c.Talent, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
	for _, s := range c.Statuses { // oldest first: append-only slice preserves order
		if frame := m.fireHandler(s, e); len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
}

func (m *Match) fireHandler(h EffectHost, e Event) ActionFrame {
	if h == nil {
		return nil
	}
	handler, ok := h.EventHandlers()[e.Type]
	if !ok {
		return nil
	}
	return handler(m, h, e)
}

// modifyValue runs every host's value_modifier_<TYPE> in the same
// traversal order as dispatch, threading the Value through each handler in
// turn (spec §4.5). mode selects TEST (pure) or REAL (applied) semantics;
// it is the handler's responsibility to only mutate state in REAL mode.
func (m *Match) modifyValue(vt ValueType, mode ValueMode, v Value) Value {
	order := []int{m.CurrentPlayer, 1 - m.CurrentPlayer}
	for _, p := range order {
		t := m.Tables[p]
		n := len(t.Characters)
		if n > 0 {
			start := t.ActiveIndex
			if start < 0 {
				start = 0
			}
			for i := 0; i < n; i++ {
				c := t.Characters[(start+i)%n]
				v = m.applyModifier(c.Weapon, vt, mode, v)
				v = m.applyModifier(c.Artifact, vt, mode, v)
				v = m.applyModifier(c.Talent, vt, mode, v)
				for _, s := range c.Statuses {
					v = m.applyModifier(s, vt, mode, v)
				}
			}
		}
		for _, h := range t.Summons {
			v = m.applyModifier(h, vt, mode, v)
		}
		for _, h := range t.Supports {
			v = m.applyModifier(h, vt, mode, v)
		}
		for _, h := range t.TeamStatuses {
			v = m.applyModifier(h, vt, mode, v)
		}
	}
	return m.applyModifier(m.system, vt, mode, v)
}

func (m *Match) applyModifier(h EffectHost, vt ValueType, mode ValueMode, v Value) Value {
	if h == nil {
		return v
	}
	fn, ok := h.ValueModifiers()[vt]
	if !ok {
		return v
	}
	return fn(m, h, mode, v)
}
