package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event staged in the outbox table, waiting for the
// relay to hand it to the broker. Staging happens in the same transaction as
// the aggregate write, so an analysis is never persisted without its events.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry stages a DomainEvent for deferred publication.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.OccurredAt(),
	}
}

// OutboxRepository is the port for outbox persistence.
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Sink delivers staged outbox entries to a message broker.
type Sink interface {
	Deliver(ctx context.Context, entries ...OutboxEntry) error
}
