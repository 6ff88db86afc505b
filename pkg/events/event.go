package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the contract every domain event in the analysis pipeline
// satisfies. Events carry a pre-serialized payload so that publishers and the
// outbox never need to know concrete event types.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent provides the envelope fields of DomainEvent. Concrete events embed
// it and add typed accessors for their payload.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent creates an event envelope with a fresh UUID and the current UTC time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

// EventID returns the unique identifier of this event instance.
func (e BaseEvent) EventID() uuid.UUID {
	return e.id
}

// EventType returns the dotted event type name, e.g. "deepxcheck.analysis.completed".
func (e BaseEvent) EventType() string {
	return e.eventType
}

// AggregateID returns the identifier of the aggregate that emitted the event.
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.aggregateID
}

// AggregateType returns the aggregate type name, e.g. "profile_analysis".
func (e BaseEvent) AggregateType() string {
	return e.aggregateType
}

// OccurredAt returns the UTC time the event was recorded.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Payload returns the serialized event body.
func (e BaseEvent) Payload() []byte {
	return e.payload
}
