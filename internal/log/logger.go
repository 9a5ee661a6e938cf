package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	if p < 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	state := e.State
	for len(state) < 24 {
		state += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, state, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(round int, state string) GameEvent {
	return GameEvent{
		Round:   round,
		State:   state,
		Player:  -1,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("state -> %s", state),
	}
}

func NewRoundStartEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventRoundStart,
		Details: fmt.Sprintf("round %d starts", round),
	}
}

func NewRoundEndEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventRoundEnd,
		Details: fmt.Sprintf("round %d ends", round),
	}
}

func NewDrawCardEvent(round, player, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventDrawCard,
		Details: fmt.Sprintf("%s draws %d card(s)", playerName(player), count),
	}
}

func NewCreateDiceEvent(round, player, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventCreateDice,
		Details: fmt.Sprintf("%s rolls %d dice", playerName(player), count),
	}
}

func NewRerollDiceEvent(round, player, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventRerollDice,
		Details: fmt.Sprintf("%s rerolls %d dice", playerName(player), count),
	}
}

func NewChooseCharacterEvent(round, player int, name string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  name,
		Type:    EventChooseCharacter,
		Details: fmt.Sprintf("%s chooses %s as active", playerName(player), name),
	}
}

func NewSwitchCharacterEvent(round, player int, from, to string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  to,
		Type:    EventSwitchCharacter,
		Details: fmt.Sprintf("%s switches %s -> %s", playerName(player), from, to),
	}
}

func NewUseSkillEvent(round, player int, character, skill string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  character,
		Type:    EventUseSkill,
		Details: fmt.Sprintf("%s uses %s (%s)", playerName(player), skill, character),
	}
}

func NewUseCardEvent(round, player int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  card,
		Type:    EventUseCard,
		Details: fmt.Sprintf("%s plays %s", playerName(player), card),
	}
}

func NewElementalTuningEvent(round, player int, card string, die string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  card,
		Type:    EventElementalTuning,
		Details: fmt.Sprintf("%s tunes %s into a %s die", playerName(player), card, die),
	}
}

func NewMakeDamageEvent(round, sourcePlayer int, details string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  sourcePlayer,
		Type:    EventMakeDamage,
		Details: details,
	}
}

func NewReceiveDamageEvent(round, targetPlayer int, target string, amount int, hpAfter int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  targetPlayer,
		Object:  target,
		Type:    EventReceiveDamage,
		Details: fmt.Sprintf("%s takes %d damage (%d HP left)", target, amount, hpAfter),
	}
}

func NewReactionEvent(round, targetPlayer int, target string, reaction string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  targetPlayer,
		Object:  target,
		Type:    EventReaction,
		Details: fmt.Sprintf("%s triggers %s", target, reaction),
	}
}

func NewChargeEvent(round, player int, character string, delta int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  character,
		Type:    EventCharge,
		Details: fmt.Sprintf("%s charge %+d", character, delta),
	}
}

func NewDeclareRoundEndEvent(round, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventDeclareRoundEnd,
		Details: fmt.Sprintf("%s declares round end", playerName(player)),
	}
}

func NewCharacterDefeatedEvent(round, player int, character string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  character,
		Type:    EventCharacterDefeated,
		Details: fmt.Sprintf("%s is defeated", character),
	}
}

func NewCreateObjectEvent(round, player int, name string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  name,
		Type:    EventCreateObject,
		Details: fmt.Sprintf("%s gains %s", playerName(player), name),
	}
}

func NewRemoveObjectEvent(round, player int, name string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Object:  name,
		Type:    EventRemoveObject,
		Details: fmt.Sprintf("%s loses %s", playerName(player), name),
	}
}

func NewWinEvent(round, winner int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins", playerName(winner)),
	}
}

func NewErrorEvent(round int, details string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventError,
		Details: details,
	}
}
