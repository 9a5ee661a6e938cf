package engine

// applyDamageValue runs one DamageValue through the damage pipeline
// (spec.md §4.3): three ordered REAL-mode modifier passes, elemental
// reaction resolution, HP clamp, then defeat detection. Returns the
// ReceiveDamagePayload recorded for the resulting event plus any follow-up
// actions (forced switches from Overloaded, defeat bookkeeping, swirl
// fan-out).
func (m *Match) applyDamageValue(dv DamageValue) (ReceiveDamagePayload, ActionFrame) {
	target := m.Tables[dv.TargetPlayer].Characters[dv.TargetCharacter]
	if target == nil || !target.Alive {
		return ReceiveDamagePayload{Original: dv, Final: dv}, nil
	}

	working := dv
	working = m.runDamagePass(ValueDamageIncrease, working)
	working = m.runDamagePass(ValueDamageMultiply, working)
	working = m.runDamagePass(ValueDamageDecrease, working)

	reaction := ReactionNone
	var reactedElements []Element
	var frame ActionFrame

	if !working.NoReaction && working.DamageType != ElementPhysical {
		originalAura := target.Aura
		entry, newAura := resolveReaction(target.Aura, working.DamageType)
		if entry.Reaction != ReactionNone {
			reaction = entry.Reaction
			working.Damage += entry.Bonus
			target.Aura = ElementNone
			reactedElements = []Element{originalAura, working.DamageType}

			if entry.Overload {
				t := m.Tables[dv.TargetPlayer]
				if dv.TargetCharacter == t.ActiveIndex {
					if next := t.NextAliveIndex(t.ActiveIndex); next >= 0 {
						frame = append(frame, Action{
							Type:               ActionSwitchCharacter,
							Player:             dv.TargetPlayer,
							FromCharacterIndex: t.ActiveIndex,
							CharacterIndex:     next,
							ForcedSwitch:       true,
							Desc:               "Overloaded forces a switch",
						})
					}
				}
			}

			for _, carrier := range entry.SwirlInto {
				for i, other := range m.Tables[dv.TargetPlayer].Characters {
					if i == dv.TargetCharacter || !other.Alive {
						continue
					}
					frame = append(frame, Action{
						Type:   ActionMakeDamage,
						Player: dv.SourcePlayer,
						DamageValues: []DamageValue{{
							SourcePlayer:    dv.SourcePlayer,
							TargetPlayer:    dv.TargetPlayer,
							TargetCharacter: i,
							Damage:          1,
							DamageType:      carrier,
							NoReaction:      true,
						}},
						Desc: "swirl fan-out",
					})
				}
			}

			if entry.SplashDamage > 0 {
				for i, other := range m.Tables[dv.TargetPlayer].Characters {
					if i == dv.TargetCharacter || !other.Alive {
						continue
					}
					frame = append(frame, Action{
						Type:   ActionMakeDamage,
						Player: dv.SourcePlayer,
						DamageValues: []DamageValue{{
							SourcePlayer:    dv.SourcePlayer,
							TargetPlayer:    dv.TargetPlayer,
							TargetCharacter: i,
							Damage:          entry.SplashDamage,
							DamageType:      entry.SplashType,
							NoReaction:      true,
						}},
						Desc: entry.Reaction.String() + " splash",
					})
				}
			}
		} else {
			target.Aura = newAura
			if working.DamageType.Persistable() {
				target.Aura = working.DamageType
			}
		}
	}

	hpBefore := target.HP
	target.HP = clampInt(target.HP-working.Damage, 0, target.MaxHP)
	if target.HP == 0 && target.Alive {
		target.Alive = false
		frame = append(frame, Action{
			Type:                   ActionCharacterDefeated,
			Player:                 dv.TargetPlayer,
			DefeatedCharacterIndex: dv.TargetCharacter,
		})
	}

	payload := ReceiveDamagePayload{
		Original:        dv,
		Final:           working,
		Reaction:        reaction,
		ReactedElements: reactedElements,
		HPBefore:        hpBefore,
		HPAfter:         target.HP,
	}
	return payload, frame
}

func (m *Match) runDamagePass(vt ValueType, dv DamageValue) DamageValue {
	v := m.modifyValue(vt, ValueModeReal, Value{Type: vt, DamMod: DamageModifierValue{Base: dv}})
	mod := v.DamMod
	switch vt {
	case ValueDamageIncrease:
		dv.Damage += mod.Amount
	case ValueDamageMultiply:
		if mod.Factor > 0 {
			dv.Damage = dv.Damage * mod.Factor / 100
		}
	case ValueDamageDecrease:
		dv.Damage -= mod.Amount
	}
	if dv.Damage < 0 {
		dv.Damage = 0
	}
	return dv
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
