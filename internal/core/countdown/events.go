package countdown

import "time"

// State represents the controller mode.
type State string

const (
	StateStandby    State = "standby"
	StateProcessing State = "processing"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventValueChanged EventType = "value_changed"
	EventStateChange  EventType = "state_change"
	EventCompleted    EventType = "completed"
)

// Event represents a controller update for observers.
type Event struct {
	Type  EventType
	State State
	Value Value
	At    time.Time
}
