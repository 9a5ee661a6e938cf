package engine

import (
	"reflect"
	"testing"

	"github.com/rkatz/tcgsim/internal/engine/catalog"
)

// newScenarioMatch builds a Match against the example catalog's default
// config and deck, mirroring the teacher's duel_test.go fixture builder
// but sized to this engine's Config/Catalog types instead of game.Duel.
func newScenarioMatch(t *testing.T, seed int64) *Match {
	t.Helper()
	cat := catalog.Build()
	cfg := catalog.DefaultConfig()
	cfg.RandomFirstPlayer = false // deterministic turn order for scenario assertions
	m := NewMatch(cfg, cat, seed, nil)

	chars, deck := catalog.DefaultDeck()
	for p := 0; p < 2; p++ {
		if err := m.SetDeck(p, chars, deck); err != nil {
			t.Fatalf("SetDeck(%d): %v", p, err)
		}
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m
}

// autoRespondFirstCandidate answers whatever a player currently owes with
// the cheapest possible response (declare round end if offered, else the
// first candidate), the same "make zero-strategy progress" policy as
// agent.NoOpAgent, reimplemented locally to avoid an engine->agent import.
func autoRespondFirstCandidate(t *testing.T, m *Match, player int) {
	t.Helper()
	reqs := m.PendingRequests(player)
	if len(reqs) == 0 {
		return
	}
	for _, r := range reqs {
		if r.Type == RequestDeclareRoundEnd {
			if err := m.Respond(Response{Type: RequestDeclareRoundEnd, Player: player, DeclareRoundEnd: true}); err != nil {
				t.Fatalf("respond DeclareRoundEnd: %v", err)
			}
			return
		}
	}
	r := reqs[0]
	resp := Response{Type: r.Type, Player: player}
	switch r.Type {
	case RequestChooseCharacter, RequestSwitchCharacter:
		if len(r.CharacterCandidates) > 0 {
			resp.CharacterIndex = r.CharacterCandidates[0]
		}
	}
	if err := m.Respond(resp); err != nil {
		t.Fatalf("respond %s: %v", r.Type, err)
	}
}

// hasMainPhaseRequest reports whether any pending request is one that only
// generatePlayerRequests issues at StatePlayerActionRequest (as opposed to
// the one-time setup requests SwitchCard/ChooseCharacter/RerollDice),
// which is how settleToMainPhase recognizes "setup is over" without
// depending on round/step counts.
func hasMainPhaseRequest(m *Match) bool {
	for p := 0; p < 2; p++ {
		for _, r := range m.PendingRequests(p) {
			switch r.Type {
			case RequestDeclareRoundEnd, RequestUseSkill, RequestUseCard, RequestSwitchCharacter, RequestElementalTuning:
				return true
			}
		}
	}
	return false
}

// settleToMainPhase drains card-switch, character-choice, and dice-reroll
// setup (answering each with autoRespondFirstCandidate) and stops the
// instant the match reaches its first real player-action decision point,
// without consuming that decision, so callers can inspect or override
// state before acting.
func settleToMainPhase(t *testing.T, m *Match) {
	t.Helper()
	for i := 0; i < 50; i++ {
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if m.State == StateEnded || hasMainPhaseRequest(m) {
			return
		}
		progressed := false
		for p := 0; p < 2; p++ {
			if len(m.PendingRequests(p)) > 0 {
				autoRespondFirstCandidate(t, m, p)
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
	t.Fatalf("match did not reach a settled main phase within the setup budget")
}

// checkBounds asserts invariants 1 and 2 from spec.md §8 against the
// match's current state.
func checkBounds(t *testing.T, m *Match) {
	t.Helper()
	for p, table := range m.Tables {
		if len(table.Hand) > m.Config.MaxHandSize {
			t.Fatalf("player %d hand size %d exceeds MaxHandSize %d", p, len(table.Hand), m.Config.MaxHandSize)
		}
		if len(table.Dice) > m.Config.MaxDiceNumber {
			t.Fatalf("player %d dice count %d exceeds MaxDiceNumber %d", p, len(table.Dice), m.Config.MaxDiceNumber)
		}
		if len(table.Summons) > m.Config.MaxSummonNumber {
			t.Fatalf("player %d summons %d exceeds MaxSummonNumber %d", p, len(table.Summons), m.Config.MaxSummonNumber)
		}
		if len(table.Supports) > m.Config.MaxSupportNumber {
			t.Fatalf("player %d supports %d exceeds MaxSupportNumber %d", p, len(table.Supports), m.Config.MaxSupportNumber)
		}
		for _, c := range table.Characters {
			if c.HP < 0 || c.HP > c.MaxHP {
				t.Fatalf("player %d character %q HP %d out of [0,%d]", p, c.Name, c.HP, c.MaxHP)
			}
			if c.Charge < 0 || c.Charge > c.MaxCharge {
				t.Fatalf("player %d character %q charge %d out of [0,%d]", p, c.Name, c.Charge, c.MaxCharge)
			}
			if c.Alive != (c.HP > 0) {
				t.Fatalf("player %d character %q Alive=%v inconsistent with HP=%d", p, c.Name, c.Alive, c.HP)
			}
		}
	}
}

// TestInvariantBoundsHoldToTermination covers spec.md §8 invariants 1 and
// 2 (HP/charge/hand/dice/summon/support bounds) across a full zero-strategy
// match, and invariant 5 (step always makes progress while no one owes a
// response) by bounding the loop and requiring StateEnded to be reached.
func TestInvariantBoundsHoldToTermination(t *testing.T) {
	m := newScenarioMatch(t, 101)

	for i := 0; i < 5000 && m.State != StateEnded; i++ {
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
		checkBounds(t, m)
		for p := 0; p < 2; p++ {
			autoRespondFirstCandidate(t, m, p)
		}
	}
	if m.State != StateEnded {
		t.Fatalf("match did not reach StateEnded within the step budget")
	}
}

// TestInvariantWinnerWitness covers spec.md §8 invariant 6: once the match
// ends by elimination (not the round-limit draw), the losing side has zero
// living characters and the winning side has at least one.
func TestInvariantWinnerWitness(t *testing.T) {
	m := newScenarioMatch(t, 202)
	settleToMainPhase(t, m)

	loser := m.Tables[1]
	for _, c := range loser.Characters {
		c.HP = 0
		c.Alive = false
	}
	if !m.checkEndCondition() {
		t.Fatalf("expected checkEndCondition to report the match over once one side has no living characters")
	}
	if m.State != StateEnded {
		t.Fatalf("expected StateEnded, got %v", m.State)
	}
	if m.Winner != 0 {
		t.Fatalf("expected player 0 to win, got winner=%d", m.Winner)
	}
	aliveWinner := 0
	for _, c := range m.Tables[0].Characters {
		if c.Alive {
			aliveWinner++
		}
	}
	if aliveWinner == 0 {
		t.Fatalf("winning side has zero living characters")
	}
}

// TestInvariantSnapshotRoundTrip covers spec.md §8 invariant 4: restoring a
// snapshot reproduces the exact Match state it was taken from.
func TestInvariantSnapshotRoundTrip(t *testing.T) {
	m := newScenarioMatch(t, 303)
	for i := 0; i < 20; i++ {
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
		for p := 0; p < 2; p++ {
			autoRespondFirstCandidate(t, m, p)
		}
	}

	snap := m.Snapshot()

	// Mutate the live match further so a failed restore would be visible.
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for p := 0; p < 2; p++ {
		autoRespondFirstCandidate(t, m, p)
	}

	if err := m.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored := m.Snapshot()
	if !reflect.DeepEqual(snap, restored) {
		t.Fatalf("snapshot did not round-trip:\nbefore=%+v\nafter=%+v", snap, restored)
	}
}

// TestInvariantDeterminism covers spec.md §8 invariant 3: two matches built
// from the same seed and driven by the same response sequence produce
// byte-equal (here, deep-equal) snapshots.
func TestInvariantDeterminism(t *testing.T) {
	run := func() Snapshot {
		m := newScenarioMatch(t, 404)
		for i := 0; i < 15; i++ {
			if err := m.Step(true); err != nil {
				t.Fatalf("Step: %v", err)
			}
			for p := 0; p < 2; p++ {
				autoRespondFirstCandidate(t, m, p)
			}
		}
		return m.Snapshot()
	}

	a := run()
	b := run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two matches from the same seed and response sequence diverged")
	}
}

// TestInvariantReactionIdempotenceOnPhysical covers spec.md §8 invariant 8:
// incoming Physical damage never triggers a reaction and never mutates an
// existing aura.
func TestInvariantReactionIdempotenceOnPhysical(t *testing.T) {
	entry, newAura := resolveReaction(ElementNone, ElementPhysical)
	if entry.Reaction != ReactionNone {
		t.Fatalf("expected no reaction on Physical incoming damage, got %v", entry.Reaction)
	}
	if newAura != ElementNone {
		t.Fatalf("expected aura to remain ElementNone, got %v", newAura)
	}

	entry, newAura = resolveReaction(ElementPyro, ElementPhysical)
	if entry.Reaction != ReactionNone {
		t.Fatalf("expected no reaction when Physical lands on an existing Pyro aura, got %v", entry.Reaction)
	}
	if newAura != ElementPyro {
		t.Fatalf("expected existing Pyro aura to persist through Physical damage, got %v", newAura)
	}
}

// TestScenarioS2Overload drives spec.md §8 scenario S2: an Electro-aura'd
// active character takes 2 incoming Pyro damage, Overloaded adds +2 for a
// total of 4, the target is force-switched to the next living character,
// and the post-damage aura clears.
func TestScenarioS2Overload(t *testing.T) {
	m := newScenarioMatch(t, 505)
	settleToMainPhase(t, m)

	target := m.Tables[1]
	active := target.Active()
	if active == nil {
		t.Fatalf("player 1 has no active character")
	}
	active.Aura = ElementElectro
	startHP := active.HP
	activeIndexBefore := target.ActiveIndex

	// Clear the main-phase request settleToMainPhase stopped at: Step
	// never pops a pushed frame while a request is outstanding, and this
	// scenario drives damage directly rather than through the request
	// protocol.
	m.requests = nil

	m.pushFrame(ActionFrame{{
		Type:   ActionMakeDamage,
		Player: 0,
		DamageValues: []DamageValue{{
			SourcePlayer:    0,
			TargetPlayer:    1,
			TargetCharacter: activeIndexBefore,
			Damage:          2,
			DamageType:      ElementPyro,
		}},
	}})
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for p := 0; p < 2; p++ {
		autoRespondFirstCandidate(t, m, p)
	}

	if got, want := startHP-active.HP, 4; got != want {
		t.Fatalf("expected Overloaded damage of %d (2 base + 2 bonus), got %d", want, got)
	}
	if active.Aura != ElementNone {
		t.Fatalf("expected aura to clear after Overloaded resolves, got %v", active.Aura)
	}
	if len(target.Characters) > 1 && target.ActiveIndex == activeIndexBefore {
		t.Fatalf("expected Overloaded to force-switch the active character away from index %d", activeIndexBefore)
	}
}

// TestScenarioS5RoundPass drives spec.md §8 scenario S5: whichever player
// declares round end first goes first in the next round.
func TestScenarioS5RoundPass(t *testing.T) {
	m := newScenarioMatch(t, 606)
	settleToMainPhase(t, m)

	roundBefore := m.RoundNumber
	firstDeclarer := m.CurrentPlayer

	if err := m.Respond(Response{Type: RequestDeclareRoundEnd, Player: firstDeclarer, DeclareRoundEnd: true}); err != nil {
		t.Fatalf("player %d declare round end: %v", firstDeclarer, err)
	}
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}

	other := 1 - firstDeclarer
	if err := m.Respond(Response{Type: RequestDeclareRoundEnd, Player: other, DeclareRoundEnd: true}); err != nil {
		t.Fatalf("player %d declare round end: %v", other, err)
	}
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// Drain the new round's dice-reroll requests to reach the point
	// CurrentPlayer is reset from FirstPlayer (StateRoundPreparing).
	settleToMainPhase(t, m)

	if m.RoundNumber <= roundBefore {
		t.Fatalf("expected a new round to have started, round stayed at %d", m.RoundNumber)
	}
	if m.FirstPlayer != firstDeclarer {
		t.Fatalf("expected player %d (first to declare) to go first next round, FirstPlayer=%d", firstDeclarer, m.FirstPlayer)
	}
	if m.CurrentPlayer != firstDeclarer {
		t.Fatalf("expected CurrentPlayer=%d at the new round's start, got %d", firstDeclarer, m.CurrentPlayer)
	}
}

// TestScenarioS6BurstGate drives spec.md §8 scenario S6, adapted to this
// engine's validate-on-respond gating (request.go's respondUseSkill):
// attempting a burst before charge_required is met is rejected and leaves
// charge/dice untouched; once charge reaches the requirement, the same
// burst succeeds and debits exactly its dice cost.
func TestScenarioS6BurstGate(t *testing.T) {
	m := newScenarioMatch(t, 707)
	settleToMainPhase(t, m)

	player := m.CurrentPlayer
	table := m.Tables[player]
	active := table.Active()
	if active == nil {
		t.Fatalf("player %d has no active character", player)
	}
	burstIndex := -1
	for i, s := range active.Skills {
		if s.Type == SkillBurst {
			burstIndex = i
		}
	}
	if burstIndex < 0 {
		t.Fatalf("active character %q has no burst skill", active.Name)
	}

	active.Charge = active.MaxCharge - 1
	diceBefore := len(table.Dice)
	if err := m.Respond(Response{Type: RequestUseSkill, Player: player, SkillIndex: burstIndex}); err == nil {
		t.Fatalf("expected an undercharged burst to be rejected")
	}
	if active.Charge != active.MaxCharge-1 {
		t.Fatalf("charge must be unchanged after a rejected burst, got %d", active.Charge)
	}
	if len(table.Dice) != diceBefore {
		t.Fatalf("dice must be unchanged after a rejected burst, got %d want %d", len(table.Dice), diceBefore)
	}

	active.Charge = active.MaxCharge
	cost := active.Skills[burstIndex].BaseCost.ElementalCount
	payDice := make([]int, 0, cost)
	for i, d := range table.Dice {
		if d.Color == ElementToDieColor[active.Element] || d.Color == DieOmni {
			payDice = append(payDice, i)
			if len(payDice) == cost {
				break
			}
		}
	}
	if len(payDice) < cost {
		t.Skipf("seed 707 did not deal a matching-color dice pool for the burst cost; scenario needs reseeding rather than a false failure")
	}
	if err := m.Respond(Response{Type: RequestUseSkill, Player: player, SkillIndex: burstIndex, PayDice: payDice}); err != nil {
		t.Fatalf("expected charged burst to succeed: %v", err)
	}
	// Respond only queues the skill's action frame; Step drains it (the
	// dice debit is an ActionRemoveDice inside that frame).
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for p := 0; p < 2; p++ {
		autoRespondFirstCandidate(t, m, p)
	}
	if got, want := diceBefore-len(table.Dice), cost; got != want {
		t.Fatalf("expected exactly %d dice debited, got %d", want, got)
	}
}

// TestScenarioS1Tuning drives spec.md §8 scenario S1: elemental tuning
// converts one hand card into one die of the active character's element,
// leaving hand size down by one and dice count unchanged.
func TestScenarioS1Tuning(t *testing.T) {
	m := newScenarioMatch(t, 909)
	settleToMainPhase(t, m)

	player := m.CurrentPlayer
	table := m.Tables[player]
	if len(table.Hand) == 0 {
		t.Fatalf("player %d has no hand to tune from", player)
	}
	active := table.Active()
	if active == nil {
		t.Fatalf("player %d has no active character", player)
	}
	activeColor, ok := ElementToDieColor[active.Element]
	if !ok {
		t.Fatalf("active character %q's element %v has no die color mapping", active.Name, active.Element)
	}

	dieIndex := -1
	for i, d := range table.Dice {
		if d.Color != DieOmni && d.Color != activeColor {
			dieIndex = i
			break
		}
	}
	if dieIndex < 0 {
		t.Skipf("seed 909 did not deal a die eligible to tune away")
	}

	handBefore := len(table.Hand)
	diceBefore := len(table.Dice)

	if err := m.Respond(Response{
		Type:          RequestElementalTuning,
		Player:        player,
		TuneHandIndex: 0,
		TuneDieIndex:  dieIndex,
	}); err != nil {
		t.Fatalf("respond ElementalTuning: %v", err)
	}
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for p := 0; p < 2; p++ {
		autoRespondFirstCandidate(t, m, p)
	}

	if got, want := handBefore-len(table.Hand), 1; got != want {
		t.Fatalf("expected hand size to shrink by %d, got %d", want, got)
	}
	if len(table.Dice) != diceBefore {
		t.Fatalf("expected dice count unchanged after tuning, got %d want %d", len(table.Dice), diceBefore)
	}
	if got := table.Dice[len(table.Dice)-1].Color; got != activeColor {
		t.Fatalf("expected the tuned die to become the active character's element %v, got %v", activeColor, got)
	}
}

// TestScenarioS4LiyueHarbor drives spec.md §8 scenario S4: a Liyue Harbor
// Wharf support draws its owner one card at every round end, decrementing
// its usage counter, and removes itself once spent — after two round-end
// declarations the owner's hand has grown by exactly 2 and the support is
// gone. The host is attached directly via a pushed ActionCreateObject
// (mirroring TestScenarioS2Overload) rather than played from hand, since
// the default hand is not guaranteed to contain this specific card.
func TestScenarioS4LiyueHarbor(t *testing.T) {
	m := newScenarioMatch(t, 1010)
	settleToMainPhase(t, m)

	player := m.CurrentPlayer
	host, ok := m.CatalogFor().SpawnHost("liyue_harbor", 0)
	if !ok {
		t.Fatalf("catalog has no liyue_harbor host factory")
	}
	if setter, ok := host.(interface{ SetOwner(int) }); ok {
		setter.SetOwner(player)
	}

	m.requests = nil
	m.pushFrame(ActionFrame{{
		Type:       ActionCreateObject,
		Player:     player,
		ObjectArea: AreaSupport,
		Object:     host,
	}})
	if err := m.Step(true); err != nil {
		t.Fatalf("Step: %v", err)
	}

	table := m.Tables[player]
	if len(table.Supports) != 1 {
		t.Fatalf("expected Liyue Harbor Wharf among player %d's supports, got %d supports", player, len(table.Supports))
	}

	handBefore := len(table.Hand)
	deckBefore := len(table.Deck)

	// Drive two full round-end cycles: EventRoundEnd dispatches once per
	// round (at ROUND_ENDING), and the support's onRoundEnd triggers on
	// every dispatch, depleting its 2 uses across exactly these 2 rounds.
	for round := 0; round < 2; round++ {
		settleToMainPhase(t, m)
		cur := m.CurrentPlayer
		if err := m.Respond(Response{Type: RequestDeclareRoundEnd, Player: cur, DeclareRoundEnd: true}); err != nil {
			t.Fatalf("round %d: player %d declare round end: %v", round, cur, err)
		}
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
		other := 1 - cur
		if err := m.Respond(Response{Type: RequestDeclareRoundEnd, Player: other, DeclareRoundEnd: true}); err != nil {
			t.Fatalf("round %d: player %d declare round end: %v", round, other, err)
		}
		if err := m.Step(true); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	// Drain the next round's setup so the support's queued draw/removal
	// actions (pushed from the ROUND_ENDING dispatch) are fully applied.
	settleToMainPhase(t, m)

	if got, want := len(table.Hand)-handBefore, 2; got != want {
		t.Fatalf("expected hand to grow by %d after two round ends, got %d", want, got)
	}
	if got, want := deckBefore-len(table.Deck), 2; got != want {
		t.Fatalf("expected deck to shrink by %d after two round ends, got %d", want, got)
	}
	if len(table.Supports) != 0 {
		t.Fatalf("expected Liyue Harbor Wharf to have removed itself after its 2 uses are spent, got %d supports", len(table.Supports))
	}
}
