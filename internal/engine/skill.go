package engine

import "github.com/rkatz/tcgsim/internal/log"

// buildSkillFrame assembles the action sequence one skill use produces:
// pay dice, charge bookkeeping, the skill's own damage, then SkillEnd
// (spec.md §4.4). Grounded on original_source's SkillBase.get_actions
// default (_INDEX.md / server/object_base.py): "MakeDamageAction +
// ChargeAction" for a plain attack skill, generalized here to also cover
// burst (consumes all charge) and elemental (always gains 1 charge).
func (m *Match) buildSkillFrame(player int, active *CharacterState, skill Skill, payDice []int) ActionFrame {
	t := m.Tables[player]
	frame := ActionFrame{
		{Type: ActionRemoveDice, Player: player, Dice: diceColorsFromIndices(t, payDice), Desc: "pay skill cost"},
	}

	m.log(log.NewUseSkillEvent(m.RoundNumber, player, active.Name, skill.Name))

	chargeDelta := 1
	if skill.Type == SkillBurst {
		chargeDelta = -active.Charge
	}
	frame = append(frame, Action{
		Type:           ActionCharge,
		Player:         player,
		CharacterIndex: t.ActiveIndex,
		ChargeDelta:    chargeDelta,
	})

	if skill.BaseDamage > 0 {
		opp := m.Tables[1-player]
		if opp.ActiveIndex >= 0 {
			frame = append(frame, Action{
				Type:   ActionMakeDamage,
				Player: player,
				DamageValues: []DamageValue{{
					SourcePlayer:    player,
					TargetPlayer:    1 - player,
					TargetCharacter: opp.ActiveIndex,
					Damage:          skill.BaseDamage,
					DamageType:      skill.DamageType,
				}},
			})
		}
	}

	frame = append(frame, Action{Type: ActionSkillEnd, Player: player})
	frame = append(frame, Action{Type: ActionCombatAction, Player: player, Desc: "using a skill is a combat action"})
	return frame
}
