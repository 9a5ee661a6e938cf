package engine

import "github.com/rkatz/tcgsim/internal/log"

// buildCardFrame assembles the action sequence for playing one card from
// hand: pay dice, remove it from hand, then the card's own effect
// (spec.md §4.4, generalizing the teacher's per-card CardEffect.Resolve).
func (m *Match) buildCardFrame(player, handIndex int, def CardDef, targets []int, payDice []int) ActionFrame {
	t := m.Tables[player]
	frame := ActionFrame{
		{Type: ActionRemoveDice, Player: player, Dice: diceColorsFromIndices(t, payDice), Desc: "pay card cost"},
		{Type: ActionRemoveCard, Player: player, CardIndex: handIndex},
	}
	m.log(log.NewUseCardEvent(m.RoundNumber, player, def.Name))
	if def.Play != nil {
		frame = append(frame, def.Play(m, player, handIndex, targets)...)
	}
	frame = append(frame, Action{Type: ActionCombatAction, Player: player, Desc: "playing this card is a combat action"})
	return frame
}
