package engine

import "github.com/rkatz/tcgsim/internal/log"

// transition advances the match's phase when there is no pending request
// and no queued action left to apply (spec.md §4.1's final precedence
// tier). It returns advanced=false when the match is waiting on something
// Step cannot resolve on its own (which should not happen once Start has
// been called, since every waiting state always either queues an action
// or generates a request before returning).
func (m *Match) transition() (bool, error) {
	switch m.State {
	case StateWaiting:
		return false, nil

	case StateStartingCardSwitch:
		m.enterState(StateStartingChooseCharacter)
		for p := 0; p < 2; p++ {
			m.requests = append(m.requests, Request{
				Type:                RequestChooseCharacter,
				Player:              p,
				CharacterCandidates: aliveIndices(m.Tables[p]),
			})
		}
		return true, nil

	case StateStartingChooseCharacter:
		m.enterState(StateRoundStart)
		return true, nil

	case StateRoundStart:
		m.RoundNumber++
		m.firstToDeclare = -1
		for p := 0; p < 2; p++ {
			m.Tables[p].DeclaredRoundEnd = false
			m.Tables[p].DiceRerollUsed = false
		}
		m.log(log.NewRoundStartEvent(m.RoundNumber))
		m.enterState(StateRoundRollDice)
		for p := 0; p < 2; p++ {
			n := m.Config.InitialDiceNumber
			dice := make([]DieColor, n)
			for i := range dice {
				dice[i] = DieColor(m.rng.Intn(int(DieOmni) + 1))
			}
			m.Tables[p].Dice = diceFromColors(dice)
			m.log(log.NewCreateDiceEvent(m.RoundNumber, p, n))
		}
		reroll := m.modifyValue(ValueReroll, ValueModeReal, Value{Type: ValueReroll, Reroll: RerollValue{Times: m.Config.InitialDiceRerollTimes}}).Reroll
		for p := 0; p < 2; p++ {
			times := reroll.Times
			if times <= 0 {
				times = 1
			}
			m.rerollsRemaining[p] = times
			m.requests = append(m.requests, Request{Type: RequestRerollDice, Player: p})
		}
		return true, nil

	case StateRoundRollDice:
		m.dispatch(Event{Type: EventRoundPrepare})
		m.enterState(StateRoundPreparing)
		return true, nil

	case StateRoundPreparing:
		m.CurrentPlayer = m.FirstPlayer
		m.enterState(StatePlayerActionStart)
		return true, nil

	case StatePlayerActionStart:
		m.enterState(StatePlayerActionRequest)
		return true, nil

	case StatePlayerActionRequest:
		if m.Tables[0].DeclaredRoundEnd && m.Tables[1].DeclaredRoundEnd {
			m.enterState(StateRoundEnding)
			return true, nil
		}
		if m.Tables[m.CurrentPlayer].DeclaredRoundEnd {
			m.CurrentPlayer = 1 - m.CurrentPlayer
		}
		m.generatePlayerRequests(m.CurrentPlayer)
		m.enterState(StatePlayerActionAct)
		return true, nil

	case StatePlayerActionAct:
		// Control returns here once a response has been fully applied
		// (Respond pushes a frame, Step drains it); once drained with no
		// further requests, loop back to issue the next request.
		m.enterState(StatePlayerActionRequest)
		return true, nil

	case StateRoundEnding:
		m.dispatch(Event{Type: EventRoundEnd})
		m.log(log.NewRoundEndEvent(m.RoundNumber))
		m.enterState(StateRoundEnded)
		return true, nil

	case StateRoundEnded:
		if m.RoundNumber >= m.Config.MaxRoundNumber {
			m.Winner = DrawResult
			m.enterState(StateEnded)
			m.log(log.NewWinEvent(m.RoundNumber, m.Winner))
			return true, nil
		}
		// Whoever declared round end first this round goes first next
		// round (spec.md §8 scenario S5); firstToDeclare is always set by
		// this point since StateRoundEnding only fires once both have
		// declared.
		if m.firstToDeclare >= 0 {
			m.FirstPlayer = m.firstToDeclare
		} else {
			m.FirstPlayer = 1 - m.FirstPlayer
		}
		m.enterState(StateRoundStart)
		return true, nil

	default:
		return false, nil
	}
}

func (m *Match) enterState(s MatchState) {
	m.State = s
	m.log(log.NewPhaseChangeEvent(m.RoundNumber, s.String()))
}

func diceFromColors(colors []DieColor) []Die {
	out := make([]Die, len(colors))
	for i, c := range colors {
		out[i] = Die{Color: c}
	}
	return out
}

// generatePlayerRequests issues every legal request kind for player at
// PLAYER_ACTION_REQUEST (spec.md §5): they may switch character, tune a
// die, use a skill, play a card, or declare round end. Respond consumes
// exactly one of these; the rest are discarded once any is answered,
// since answering regenerates the set for the next request cycle.
func (m *Match) generatePlayerRequests(player int) {
	t := m.Tables[player]

	candidates := aliveIndices(t)
	var switchCandidates []int
	for _, i := range candidates {
		if i != t.ActiveIndex {
			switchCandidates = append(switchCandidates, i)
		}
	}
	if len(switchCandidates) > 0 {
		m.requests = append(m.requests, Request{Type: RequestSwitchCharacter, Player: player, CharacterCandidates: switchCandidates})
	}

	if active := t.Active(); active != nil && len(active.Skills) > 0 {
		m.requests = append(m.requests, Request{Type: RequestUseSkill, Player: player, SkillCandidates: allIndices(len(active.Skills))})
	}

	if len(t.Hand) > 0 {
		m.requests = append(m.requests, Request{Type: RequestUseCard, Player: player, CardCandidates: allIndices(len(t.Hand))})
		m.requests = append(m.requests, Request{Type: RequestElementalTuning, Player: player, TuneCandidates: allIndices(len(t.Hand))})
	}

	m.requests = append(m.requests, Request{Type: RequestDeclareRoundEnd, Player: player})
}
