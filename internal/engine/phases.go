package engine

import "github.com/rkatz/tcgsim/internal/log"

// applyAction mutates Match state for one primitive Action and dispatches
// the matching event to every reactive object, per spec.md §4.2: apply
// first, then notify. Handlers triggered by dispatch may push a new frame,
// which Step drains before returning to the caller (depth-first).
func (m *Match) applyAction(a Action) error {
	switch a.Type {
	case ActionDrawCard:
		m.doDrawCard(a)
	case ActionRestoreCard:
		m.doRestoreCard(a)
	case ActionRemoveCard:
		m.doRemoveCard(a)
	case ActionCreateDice:
		m.doCreateDice(a)
	case ActionRemoveDice:
		m.doRemoveDice(a)
	case ActionChooseCharacter:
		m.doChooseCharacter(a)
	case ActionSwitchCharacter:
		m.doSwitchCharacter(a)
	case ActionMakeDamage:
		m.doMakeDamage(a)
		m.dispatch(Event{Type: EventMakeDamage, Action: a})
		return nil
	case ActionCharge:
		m.doCharge(a)
	case ActionSkillEnd:
		// no state mutation; marks the end of a skill's action sequence
	case ActionDeclareRoundEnd:
		m.doDeclareRoundEnd(a)
	case ActionCombatAction:
		m.doCombatAction(a)
	case ActionCharacterDefeated:
		m.doCharacterDefeated(a)
	case ActionCreateObject:
		m.doCreateObject(a)
	case ActionRemoveObject:
		m.doRemoveObject(a)
	case ActionGenerateRequest:
		m.requests = append(m.requests, a.Request)
		return nil // EventType has no entry for request generation
	}
	// EventType has EventReceiveDamage and EventAfterMakeDamage around
	// EventMakeDamage, so each action after ActionMakeDamage maps to the
	// event two positions further on.
	et := EventType(a.Type)
	if a.Type > ActionMakeDamage {
		et += 2
	}
	m.dispatch(Event{Type: et, Action: a})
	return nil
}

func (m *Match) doDrawCard(a Action) {
	t := m.Tables[a.Player]
	n := a.Count
	if n > len(t.Deck) {
		n = len(t.Deck)
	}
	if n > 0 {
		t.Hand = append(t.Hand, t.Deck[len(t.Deck)-n:]...)
		t.Deck = t.Deck[:len(t.Deck)-n]
	}
	m.log(log.NewDrawCardEvent(m.RoundNumber, a.Player, n))
}

func (m *Match) doRestoreCard(a Action) {
	t := m.Tables[a.Player]
	for _, id := range a.Cards {
		removeFirstInt(&t.Hand, id)
		t.Deck = append(t.Deck, id)
	}
	m.rng.Shuffle(len(t.Deck), func(i, j int) { t.Deck[i], t.Deck[j] = t.Deck[j], t.Deck[i] })
}

func removeFirstInt(xs *[]int, v int) {
	for i, x := range *xs {
		if x == v {
			*xs = append((*xs)[:i], (*xs)[i+1:]...)
			return
		}
	}
}

func (m *Match) doRemoveCard(a Action) {
	t := m.Tables[a.Player]
	if a.CardIndex >= 0 && a.CardIndex < len(t.Hand) {
		t.Hand = append(t.Hand[:a.CardIndex], t.Hand[a.CardIndex+1:]...)
	}
}

func (m *Match) doCreateDice(a Action) {
	t := m.Tables[a.Player]
	for _, c := range a.Dice {
		t.Dice = append(t.Dice, Die{Color: c})
	}
	if len(t.Dice) > m.Config.MaxDiceNumber {
		t.Dice = t.Dice[:m.Config.MaxDiceNumber]
	}
	m.log(log.NewCreateDiceEvent(m.RoundNumber, a.Player, len(a.Dice)))
}

func (m *Match) doRemoveDice(a Action) {
	t := m.Tables[a.Player]
	for _, c := range a.Dice {
		for i, d := range t.Dice {
			if d.Color == c {
				t.Dice = append(t.Dice[:i], t.Dice[i+1:]...)
				break
			}
		}
	}
}

func (m *Match) doChooseCharacter(a Action) {
	t := m.Tables[a.Player]
	t.ActiveIndex = a.CharacterIndex
	name := ""
	if active := t.Active(); active != nil {
		name = active.Name
	}
	m.log(log.NewChooseCharacterEvent(m.RoundNumber, a.Player, name))
}

func (m *Match) doSwitchCharacter(a Action) {
	t := m.Tables[a.Player]
	fromName, toName := "", ""
	if a.FromCharacterIndex >= 0 && a.FromCharacterIndex < len(t.Characters) {
		fromName = t.Characters[a.FromCharacterIndex].Name
	}
	if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
		toName = t.Characters[a.CharacterIndex].Name
	}
	t.ActiveIndex = a.CharacterIndex
	m.log(log.NewSwitchCharacterEvent(m.RoundNumber, a.Player, fromName, toName))
}

func (m *Match) doMakeDamage(a Action) {
	for _, dv := range a.DamageValues {
		payload, frame := m.applyDamageValue(dv)
		t := m.Tables[dv.TargetPlayer]
		target := t.Characters[dv.TargetCharacter]
		m.log(log.NewReceiveDamageEvent(m.RoundNumber, dv.TargetPlayer, target.Name, payload.Final.Damage, payload.HPAfter))
		if payload.Reaction != ReactionNone {
			m.log(log.NewReactionEvent(m.RoundNumber, dv.TargetPlayer, target.Name, payload.Reaction.String()))
		}
		m.dispatch(Event{Type: EventReceiveDamage, Action: a, Damage: payload})
		if len(frame) > 0 {
			m.pushFrame(frame)
		}
	}
}

func (m *Match) doCharge(a Action) {
	t := m.Tables[a.Player]
	if a.CharacterIndex < 0 || a.CharacterIndex >= len(t.Characters) {
		return
	}
	c := t.Characters[a.CharacterIndex]
	c.Charge = clampInt(c.Charge+a.ChargeDelta, 0, c.MaxCharge)
	m.log(log.NewChargeEvent(m.RoundNumber, a.Player, c.Name, a.ChargeDelta))
}

func (m *Match) doDeclareRoundEnd(a Action) {
	m.Tables[a.Player].DeclaredRoundEnd = true
	if m.firstToDeclare < 0 {
		m.firstToDeclare = a.Player
	}
	m.log(log.NewDeclareRoundEndEvent(m.RoundNumber, a.Player))
}

// doCombatAction records that a combat action was taken, used by the
// phase transition logic to decide whether priority passes to the other
// player (spec.md glossary: combat actions pass the turn unless the other
// player already declared round end).
func (m *Match) doCombatAction(a Action) {
	if !m.Tables[1-a.Player].DeclaredRoundEnd {
		m.CurrentPlayer = 1 - a.Player
	}
}

func (m *Match) doCharacterDefeated(a Action) {
	t := m.Tables[a.Player]
	c := t.Characters[a.DefeatedCharacterIndex]
	m.log(log.NewCharacterDefeatedEvent(m.RoundNumber, a.Player, c.Name))
	if t.ActiveIndex == a.DefeatedCharacterIndex {
		next := t.NextAliveIndex(a.DefeatedCharacterIndex)
		if next >= 0 {
			m.requests = append(m.requests, Request{
				Type:                RequestChooseCharacter,
				Player:              a.Player,
				CharacterCandidates: aliveIndices(t),
			})
		}
	}
}

func aliveIndices(t *PlayerTable) []int {
	var out []int
	for i, c := range t.Characters {
		if c.Alive {
			out = append(out, i)
		}
	}
	return out
}

func (m *Match) doCreateObject(a Action) {
	if a.Object == nil {
		return
	}
	m.log(log.NewCreateObjectEvent(m.RoundNumber, a.Player, a.Object.(EffectHost).Name()))
	host := a.Object.(EffectHost)
	t := m.Tables[a.Player]
	switch a.ObjectArea {
	case AreaSummon:
		t.Summons = append(t.Summons, host)
	case AreaSupport:
		t.Supports = append(t.Supports, host)
	case AreaTeamStatus:
		t.TeamStatuses = append(t.TeamStatuses, host)
	case AreaCharacterStatus:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
			t.Characters[a.CharacterIndex].Statuses = append(t.Characters[a.CharacterIndex].Statuses, host)
		}
	case AreaWeapon:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
			t.Characters[a.CharacterIndex].Weapon = host
		}
	case AreaArtifact:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
			t.Characters[a.CharacterIndex].Artifact = host
		}
	case AreaTalent:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
			t.Characters[a.CharacterIndex].Talent = host
		}
	}
}

func (m *Match) doRemoveObject(a Action) {
	if a.Object == nil {
		return
	}
	m.log(log.NewRemoveObjectEvent(m.RoundNumber, a.Player, a.Object.(EffectHost).Name()))
	t := m.Tables[a.Player]
	target := a.Object.(EffectHost)
	switch a.ObjectArea {
	case AreaSummon:
		removeHost(&t.Summons, target)
	case AreaSupport:
		removeHost(&t.Supports, target)
	case AreaTeamStatus:
		removeHost(&t.TeamStatuses, target)
	case AreaCharacterStatus:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) {
			removeHost(&t.Characters[a.CharacterIndex].Statuses, target)
		}
	case AreaWeapon:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) && t.Characters[a.CharacterIndex].Weapon != nil && t.Characters[a.CharacterIndex].Weapon.ID() == target.ID() {
			t.Characters[a.CharacterIndex].Weapon = nil
		}
	case AreaArtifact:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) && t.Characters[a.CharacterIndex].Artifact != nil && t.Characters[a.CharacterIndex].Artifact.ID() == target.ID() {
			t.Characters[a.CharacterIndex].Artifact = nil
		}
	case AreaTalent:
		if a.CharacterIndex >= 0 && a.CharacterIndex < len(t.Characters) && t.Characters[a.CharacterIndex].Talent != nil && t.Characters[a.CharacterIndex].Talent.ID() == target.ID() {
			t.Characters[a.CharacterIndex].Talent = nil
		}
	}
}

func removeHost(xs *[]EffectHost, target EffectHost) {
	for i, h := range *xs {
		if h.ID() == target.ID() {
			*xs = append((*xs)[:i], (*xs)[i+1:]...)
			return
		}
	}
}
