package combat

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// EventKind classifies turn events.
type EventKind int

const (
	// EventTurnCompleted marks the end of an attack round. Presentation layers
	// use it as an animation boundary; it carries no game state.
	EventTurnCompleted EventKind = iota
	EventDeath
	EventEngulfed
	EventExpelled
)

func (k EventKind) String() string {
	switch k {
	case EventTurnCompleted:
		return "turn_completed"
	case EventDeath:
		return "death"
	case EventEngulfed:
		return "engulfed"
	case EventExpelled:
		return "expelled"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted after the state it describes has been fully resolved.
type Event struct {
	Kind     EventKind
	Turn     int
	ActorID  string
	TargetID string
	Outcome  Outcome
	Pos      grid.Pos
}

// EventSink consumes events. Sinks must not draw random values or mutate
// actors.
type EventSink interface {
	Emit(Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

// Emit calls f(e).
func (f EventFunc) Emit(e Event) { f(e) }

// EventLog records events in order.
type EventLog struct {
	events []Event
}

// Emit appends e.
func (l *EventLog) Emit(e Event) { l.events = append(l.events, e) }

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Count returns how many events of kind k were recorded.
func (l *EventLog) Count(k EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
