// Package types defines the shared data structures for the cardfight engine.
// It holds plain data types and sentinel errors, with no engine logic.
package types

import "errors"

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional, e.g. hand position
	Target string // optional, e.g. enemy key
}

// Event is published by the fight as state changes happen.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single fight step.
type Result struct {
	Events []Event
	Output []string
}

// Event types published on a fight's bus.
const (
	EventCardDrawn     = "card_drawn"
	EventCardPlayed    = "card_played"
	EventHandDiscarded = "hand_discarded"
	EventReshuffled    = "discard_reshuffled"
	EventDamaged       = "damaged"
	EventBlockGained   = "block_gained"
	EventHealed        = "healed"
	EventDeath         = "death"
	EventEnemyAction   = "enemy_action"
	EventTurnStarted   = "turn_started"
	EventFightOver     = "fight_over"
)

// Outcome is the terminal state of a fight.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "in progress"
	}
}

// Caller errors. Call sites wrap these with context; match with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmptyQueue         = errors.New("empty queue")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrFightOver          = errors.New("fight is over")
)
