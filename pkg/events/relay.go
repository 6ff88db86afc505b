package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRelayInterval  = time.Second
	defaultRelayBatchSize = 100
	shutdownFlushTimeout  = 5 * time.Second
)

// Relay drains the outbox to a sink in the background. Delivery is
// at-least-once: a crash between Deliver and MarkPublished re-delivers the
// batch on the next tick, so consumers must de-duplicate on event ID.
type Relay struct {
	repo      OutboxRepository
	sink      Sink
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewRelay creates a Relay. Non-positive interval or batch size fall back to
// the defaults.
func NewRelay(repo OutboxRepository, sink Sink, interval time.Duration, batchSize int, logger *slog.Logger) *Relay {
	if interval <= 0 {
		interval = defaultRelayInterval
	}
	if batchSize <= 0 {
		batchSize = defaultRelayBatchSize
	}
	return &Relay{
		repo:      repo,
		sink:      sink,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run polls the outbox until ctx is cancelled, then makes one final flush
// attempt so a graceful shutdown does not strand staged events.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			if _, err := r.Flush(flushCtx); err != nil {
				r.logger.Error("final outbox flush failed", "error", err)
			}
			cancel()
			return
		case <-ticker.C:
			n, err := r.Flush(ctx)
			if err != nil {
				r.logger.Error("outbox flush failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("outbox entries delivered", "count", n)
			}
		}
	}
}

// Flush delivers one batch of unpublished entries and marks them published.
// It returns how many entries went out.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	entries, err := r.repo.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch unpublished events: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := r.sink.Deliver(ctx, entries...); err != nil {
		return 0, fmt.Errorf("deliver events: %w", err)
	}

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	if err := r.repo.MarkPublished(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark events published: %w", err)
	}

	return len(entries), nil
}
