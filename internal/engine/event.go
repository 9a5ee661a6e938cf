package engine

// EventType is the closed set of dispatchable events, one per Action type
// plus a handful of derived events the damage pipeline and phase machine
// synthesize. Generalizes the teacher's log.EventType (internal/log,
// ~30 cases) to this engine's domain.
type EventType int

const (
	EventDrawCard EventType = iota
	EventRestoreCard
	EventRemoveCard
	EventCreateDice
	EventRemoveDice
	EventChooseCharacter
	EventSwitchCharacter
	EventReceiveDamage
	EventMakeDamage
	EventAfterMakeDamage
	EventCharge
	EventSkillEnd
	EventDeclareRoundEnd
	EventCombatAction
	EventCharacterDefeated
	EventCreateObject
	EventRemoveObject
	EventRoundPrepare
	EventRoundEnd
)

func (e EventType) String() string {
	switch e {
	case EventDrawCard:
		return "DrawCard"
	case EventRestoreCard:
		return "RestoreCard"
	case EventRemoveCard:
		return "RemoveCard"
	case EventCreateDice:
		return "CreateDice"
	case EventRemoveDice:
		return "RemoveDice"
	case EventChooseCharacter:
		return "ChooseCharacter"
	case EventSwitchCharacter:
		return "SwitchCharacter"
	case EventReceiveDamage:
		return "ReceiveDamage"
	case EventMakeDamage:
		return "MakeDamage"
	case EventAfterMakeDamage:
		return "AfterMakeDamage"
	case EventCharge:
		return "Charge"
	case EventSkillEnd:
		return "SkillEnd"
	case EventDeclareRoundEnd:
		return "DeclareRoundEnd"
	case EventCombatAction:
		return "CombatAction"
	case EventCharacterDefeated:
		return "CharacterDefeated"
	case EventCreateObject:
		return "CreateObject"
	case EventRemoveObject:
		return "RemoveObject"
	case EventRoundPrepare:
		return "RoundPrepare"
	case EventRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// Event carries the action that produced it plus enough post-state for
// handlers to react without re-querying the whole match (spec.md §3,
// "Event set": one event type per action, carrying the originating
// action and post-state snapshots).
type Event struct {
	Type   EventType
	Action Action

	// ReceiveDamage-specific payload
	Damage ReceiveDamagePayload
}

// ReceiveDamagePayload snapshots one damage application for
// ReceiveDamageEventArguments (spec.md §4.3 step 6).
type ReceiveDamagePayload struct {
	Original        DamageValue
	Final           DamageValue
	Reaction        Reaction
	ReactedElements []Element
	HPBefore        int
	HPAfter         int
}
