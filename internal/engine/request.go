package engine

import "fmt"

// RequestType is the closed set of outstanding-decision kinds a player can
// be asked to resolve (spec.md §5). The match never advances past
// PLAYER_ACTION_REQUEST while any player has a pending request of these
// kinds.
type RequestType int

const (
	RequestSwitchCard RequestType = iota
	RequestChooseCharacter
	RequestRerollDice
	RequestSwitchCharacter
	RequestElementalTuning
	RequestDeclareRoundEnd
	RequestUseSkill
	RequestUseCard
)

func (r RequestType) String() string {
	switch r {
	case RequestSwitchCard:
		return "SwitchCard"
	case RequestChooseCharacter:
		return "ChooseCharacter"
	case RequestRerollDice:
		return "RerollDice"
	case RequestSwitchCharacter:
		return "SwitchCharacter"
	case RequestElementalTuning:
		return "ElementalTuning"
	case RequestDeclareRoundEnd:
		return "DeclareRoundEnd"
	case RequestUseSkill:
		return "UseSkill"
	case RequestUseCard:
		return "UseCard"
	default:
		return "Unknown"
	}
}

// Request is one outstanding decision owed by Player, generated by
// ActionGenerateRequest (spec.md §5). Only the fields relevant to Type are
// populated.
type Request struct {
	Type   RequestType
	Player int

	// RequestSwitchCard
	HandCandidates []int // hand indices eligible to switch out

	// RequestChooseCharacter / RequestSwitchCharacter
	CharacterCandidates []int // character indices eligible to choose/switch to

	// RequestRerollDice: no extra fields, any subset of current dice may be rerolled

	// RequestElementalTuning
	TuneCandidates []int // hand indices eligible to tune away

	// RequestUseSkill
	SkillCandidates []int // skill indices on the active character

	// RequestUseCard
	CardCandidates []int // hand indices playable this request
}

// Response is the player's answer to one Request, submitted via
// Match.Respond (spec.md §5). Exactly the fields relevant to the matching
// Request.Type should be populated; Respond validates strictly and returns
// an error otherwise, leaving the match state unchanged.
type Response struct {
	Type   RequestType
	Player int

	HandIndices      []int    // SwitchCard: indices to discard and redraw
	CharacterIndex   int      // ChooseCharacter / SwitchCharacter / UseSkill's implicit active target
	DiceIndices      []int    // RerollDice: indices into current dice to reroll
	TuneHandIndex    int      // ElementalTuning: hand index to convert
	TuneDieIndex     int      // ElementalTuning: die index to convert
	SkillIndex       int      // UseSkill
	CardIndex        int      // UseCard
	PayDice          []int    // dice indices offered as payment (UseSkill/UseCard/ElementalTuning n/a)
	CardTargets      []int    // UseCard: target indices, meaning depends on card
	DeclareRoundEnd  bool     // DeclareRoundEnd: always true, request exists only to be accepted
}

// PendingRequests returns the player's currently outstanding requests, in
// the order they were generated.
func (m *Match) PendingRequests(player int) []Request {
	var out []Request
	for _, r := range m.requests {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out
}

// HasPendingRequests reports whether either player owes a response,
// checked at the top of every step() call per spec.md §4.1 precedence.
func (m *Match) HasPendingRequests() bool {
	return len(m.requests) > 0
}

// Respond validates and applies one player's response to their next
// pending request of the matching type, per spec.md §5's per-kind
// validation rules. On success the request is consumed and the resulting
// actions are pushed as a new frame; on failure the match is unchanged and
// an error is returned.
func (m *Match) Respond(resp Response) error {
	idx := -1
	for i, r := range m.requests {
		if r.Player == resp.Player && r.Type == resp.Type {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("engine: no pending %s request for player %d", resp.Type, resp.Player)
	}
	req := m.requests[idx]

	frame, err := m.validateAndExecute(req, resp)
	if err != nil {
		return err
	}

	// The outstanding requests generated for one decision point are
	// mutually exclusive alternatives (switch vs. tune vs. use a skill
	// vs. play a card vs. pass) except during STARTING_CARD_SWITCH/
	// STARTING_CHOOSE_CHARACTOR/ROUND_ROLL_DICE, where both players hold
	// independent requests simultaneously; answering one for a player
	// clears that player's other alternatives for the same cycle but
	// never touches the opponent's.
	kept := m.requests[:0:0]
	for i, r := range m.requests {
		if i == idx {
			continue // the request just answered is always consumed
		}
		if r.Player == resp.Player && exclusiveWith(req.Type) {
			continue
		}
		kept = append(kept, r)
	}
	m.requests = kept
	if len(frame) > 0 {
		m.pushFrame(frame)
	}
	return nil
}

// exclusiveWith reports whether answering a request of this type should
// clear the player's other pending alternatives (the PLAYER_ACTION_REQUEST
// decision-point requests), as opposed to independent per-player requests
// issued during setup/dice-roll that must each be answered on their own.
func exclusiveWith(t RequestType) bool {
	switch t {
	case RequestSwitchCharacter, RequestUseSkill, RequestUseCard, RequestElementalTuning, RequestDeclareRoundEnd:
		return true
	default:
		return false
	}
}

func (m *Match) validateAndExecute(req Request, resp Response) (ActionFrame, error) {
	switch req.Type {
	case RequestSwitchCard:
		return m.respondSwitchCard(req, resp)
	case RequestChooseCharacter:
		return m.respondChooseCharacter(req, resp)
	case RequestRerollDice:
		return m.respondRerollDice(req, resp)
	case RequestSwitchCharacter:
		return m.respondSwitchCharacter(req, resp)
	case RequestElementalTuning:
		return m.respondElementalTuning(req, resp)
	case RequestDeclareRoundEnd:
		return m.respondDeclareRoundEnd(req, resp)
	case RequestUseSkill:
		return m.respondUseSkill(req, resp)
	case RequestUseCard:
		return m.respondUseCard(req, resp)
	default:
		return nil, fmt.Errorf("engine: unknown request type %v", req.Type)
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (m *Match) respondSwitchCard(req Request, resp Response) (ActionFrame, error) {
	for _, idx := range resp.HandIndices {
		if !containsInt(req.HandCandidates, idx) {
			return nil, fmt.Errorf("engine: hand index %d not eligible to switch", idx)
		}
	}
	t := m.Tables[resp.Player]
	var frame ActionFrame
	if len(resp.HandIndices) > 0 {
		restored := make([]int, len(resp.HandIndices))
		for i, idx := range resp.HandIndices {
			restored[i] = t.Hand[idx]
		}
		frame = append(frame, Action{Type: ActionRestoreCard, Player: resp.Player, Cards: restored, Desc: "switch cards back to deck"})
		frame = append(frame, Action{Type: ActionDrawCard, Player: resp.Player, Count: len(resp.HandIndices), Desc: "draw replacement cards"})
	}
	return frame, nil
}

func (m *Match) respondChooseCharacter(req Request, resp Response) (ActionFrame, error) {
	if !containsInt(req.CharacterCandidates, resp.CharacterIndex) {
		return nil, fmt.Errorf("engine: character %d not eligible to choose", resp.CharacterIndex)
	}
	return ActionFrame{{Type: ActionChooseCharacter, Player: resp.Player, CharacterIndex: resp.CharacterIndex}}, nil
}

// respondRerollDice implements spec.md §5's Reroll contract: remove the
// selected dice, create the same count of freshly rolled random dice,
// decrement reroll_times, and re-add the request if times remain — an
// append-to-the-same-decision-point case rather than a one-shot request
// (spec.md §9 Open Question: "source sometimes appends ... instead of
// pushing a new frame"; here it is modeled as re-issuing the request,
// which observably behaves the same way for this request kind).
func (m *Match) respondRerollDice(req Request, resp Response) (ActionFrame, error) {
	t := m.Tables[resp.Player]
	for _, idx := range resp.DiceIndices {
		if idx < 0 || idx >= len(t.Dice) {
			return nil, fmt.Errorf("engine: dice index %d out of range", idx)
		}
	}
	var frame ActionFrame
	if len(resp.DiceIndices) > 0 {
		removed := diceAtIndices(t, resp.DiceIndices)
		rerolled := make([]DieColor, len(removed))
		for i := range rerolled {
			rerolled[i] = DieColor(m.rng.Intn(int(DieOmni) + 1))
		}
		frame = append(frame,
			Action{Type: ActionRemoveDice, Player: resp.Player, Dice: removed, Desc: "reroll"},
			Action{Type: ActionCreateDice, Player: resp.Player, Dice: rerolled, Desc: "reroll"},
		)
	}
	m.rerollsRemaining[resp.Player]--
	if m.rerollsRemaining[resp.Player] > 0 {
		m.requests = append(m.requests, Request{Type: RequestRerollDice, Player: resp.Player})
	}
	return frame, nil
}

func diceAtIndices(t *PlayerTable, indices []int) []DieColor {
	out := make([]DieColor, len(indices))
	for i, idx := range indices {
		out[i] = t.Dice[idx].Color
	}
	return out
}

func (m *Match) respondSwitchCharacter(req Request, resp Response) (ActionFrame, error) {
	if !containsInt(req.CharacterCandidates, resp.CharacterIndex) {
		return nil, fmt.Errorf("engine: character %d not eligible to switch to", resp.CharacterIndex)
	}
	t := m.Tables[resp.Player]
	target := t.Characters[resp.CharacterIndex]
	if !target.Alive {
		return nil, fmt.Errorf("engine: character %d is defeated", resp.CharacterIndex)
	}
	if resp.CharacterIndex == t.ActiveIndex {
		return nil, fmt.Errorf("engine: character %d is already active", resp.CharacterIndex)
	}
	return ActionFrame{
		{
			Type:               ActionSwitchCharacter,
			Player:             resp.Player,
			FromCharacterIndex: t.ActiveIndex,
			CharacterIndex:     resp.CharacterIndex,
		},
		{Type: ActionCombatAction, Player: resp.Player, Desc: "switching character is a combat action"},
	}, nil
}

func (m *Match) respondElementalTuning(req Request, resp Response) (ActionFrame, error) {
	if !containsInt(req.TuneCandidates, resp.TuneHandIndex) {
		return nil, fmt.Errorf("engine: hand index %d not eligible to tune", resp.TuneHandIndex)
	}
	t := m.Tables[resp.Player]
	if resp.TuneDieIndex < 0 || resp.TuneDieIndex >= len(t.Dice) {
		return nil, fmt.Errorf("engine: die index %d out of range", resp.TuneDieIndex)
	}
	active := t.Active()
	if active == nil {
		return nil, fmt.Errorf("engine: no active character to tune toward")
	}
	old := t.Dice[resp.TuneDieIndex].Color
	newColor, ok := ElementToDieColor[active.Element]
	if !ok {
		newColor = old
	}
	// Elemental tuning is a quick action (spec.md glossary): it never
	// pushes ActionCombatAction, so CurrentPlayer and priority are
	// unaffected.
	return ActionFrame{
		{Type: ActionRemoveCard, Player: resp.Player, CardIndex: resp.TuneHandIndex, Desc: "tune"},
		{Type: ActionRemoveDice, Player: resp.Player, Dice: []DieColor{old}},
		{Type: ActionCreateDice, Player: resp.Player, Dice: []DieColor{newColor}},
	}, nil
}

func (m *Match) respondDeclareRoundEnd(req Request, resp Response) (ActionFrame, error) {
	return ActionFrame{{Type: ActionDeclareRoundEnd, Player: resp.Player}}, nil
}

func (m *Match) respondUseSkill(req Request, resp Response) (ActionFrame, error) {
	if !containsInt(req.SkillCandidates, resp.SkillIndex) {
		return nil, fmt.Errorf("engine: skill %d not eligible to use", resp.SkillIndex)
	}
	t := m.Tables[resp.Player]
	active := t.Active()
	if active == nil || resp.SkillIndex >= len(active.Skills) {
		return nil, fmt.Errorf("engine: invalid skill index %d", resp.SkillIndex)
	}
	skill := active.Skills[resp.SkillIndex]
	cost := m.modifyValue(ValueDiceCost, ValueModeTest, Value{Type: ValueDiceCost, Cost: skill.BaseCost}).Cost
	if !cost.Satisfied(diceColorsFromIndices(t, resp.PayDice)) {
		return nil, fmt.Errorf("engine: payment does not satisfy skill cost")
	}
	if skill.Type == SkillBurst && active.Charge < active.MaxCharge {
		return nil, fmt.Errorf("engine: elemental burst not charged")
	}
	return m.buildSkillFrame(resp.Player, active, skill, resp.PayDice), nil
}

func diceColorsFromIndices(t *PlayerTable, indices []int) []DieColor {
	out := make([]DieColor, len(indices))
	for i, idx := range indices {
		out[i] = t.Dice[idx].Color
	}
	return out
}

func (m *Match) respondUseCard(req Request, resp Response) (ActionFrame, error) {
	if !containsInt(req.CardCandidates, resp.CardIndex) {
		return nil, fmt.Errorf("engine: card %d not eligible to play", resp.CardIndex)
	}
	t := m.Tables[resp.Player]
	def, ok := m.catalog.Card(t.Hand[resp.CardIndex])
	if !ok {
		return nil, fmt.Errorf("engine: unknown card in hand")
	}
	cost := m.modifyValue(ValueDiceCost, ValueModeTest, Value{Type: ValueDiceCost, Cost: def.Cost}).Cost
	if !cost.Satisfied(diceColorsFromIndices(t, resp.PayDice)) {
		return nil, fmt.Errorf("engine: payment does not satisfy card cost")
	}
	return m.buildCardFrame(resp.Player, resp.CardIndex, def, resp.CardTargets, resp.PayDice), nil
}
