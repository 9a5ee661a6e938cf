package log

// EventType enumerates all observable match events, adapted from the
// engine's internal engine.EventType vocabulary for the logging surface
// (spec.md §3 event set, plus phase/round bookkeeping events the match
// loop itself emits).
type EventType int

const (
	EventPhaseChange EventType = iota
	EventRoundStart
	EventRoundEnd
	EventDrawCard
	EventRestoreCard
	EventRemoveCard
	EventCreateDice
	EventRemoveDice
	EventRerollDice
	EventChooseCharacter
	EventSwitchCharacter
	EventUseSkill
	EventUseCard
	EventElementalTuning
	EventMakeDamage
	EventReceiveDamage
	EventReaction
	EventCharge
	EventDeclareRoundEnd
	EventCharacterDefeated
	EventCreateObject
	EventRemoveObject
	EventWin
	EventError
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventRoundStart:
		return "RoundStart"
	case EventRoundEnd:
		return "RoundEnd"
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
	case EventRerollDice:
		return "RerollDice"
	case EventChooseCharacter:
		return "ChooseCharacter"
	case EventSwitchCharacter:
		return "SwitchCharacter"
	case EventUseSkill:
		return "UseSkill"
	case EventUseCard:
		return "UseCard"
	case EventElementalTuning:
		return "ElementalTuning"
	case EventMakeDamage:
		return "MakeDamage"
	case EventReceiveDamage:
		return "ReceiveDamage"
	case EventReaction:
		return "Reaction"
	case EventCharge:
		return "Charge"
	case EventDeclareRoundEnd:
		return "DeclareRoundEnd"
	case EventCharacterDefeated:
		return "CharacterDefeated"
	case EventCreateObject:
		return "CreateObject"
	case EventRemoveObject:
		return "RemoveObject"
	case EventWin:
		return "Win"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// GameEvent is one logged occurrence. Kept deliberately flat (no nested
// payload types) so MemoryLogger/TextLogger stay format-agnostic; callers
// that need the full typed payload use the engine's own Event value and
// only hand the logger a human-readable projection of it.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // round number (1-based)
	State   string    // match state name at log time, e.g. "PLAYER_ACTION_ACT"
	Player  int       // acting/affected player (0 or 1), -1 if not player-scoped
	Type    EventType
	Object  string // object/character/card name, if applicable
	Details string // human-readable detail string
}
