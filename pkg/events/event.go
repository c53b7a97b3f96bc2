package events

import "time"

// Event is what goes onto the bus: a type code, a flat payload, and
// when it happened.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by the event constructors
// in this package.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
