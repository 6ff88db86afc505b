package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Equity1137/deep-x-check/pkg/events"
	pkgkafka "github.com/Equity1137/deep-x-check/pkg/kafka"
)

// Compile-time interface check.
var _ events.Sink = (*Publisher)(nil)

// Publisher implements events.Sink over Kafka. All analysis events go to a
// single topic, keyed by aggregate ID so consumers see each analysis in order.
type Publisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka-backed outbox sink.
func NewPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
		topic:    topic,
	}
}

// Deliver publishes staged outbox entries to the analyses topic.
func (p *Publisher) Deliver(ctx context.Context, entries ...events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	for _, entry := range entries {
		p.logger.DebugContext(ctx, "publishing event",
			"topic", p.topic,
			"event_type", entry.EventType,
			"aggregate_id", entry.AggregateID,
			"payload_size", len(entry.Payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(entry.AggregateID.String()),
			Value: entry.Payload,
			Headers: map[string]string{
				"event_type":     entry.EventType,
				"aggregate_type": entry.AggregateType,
				"event_id":       entry.ID.String(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
