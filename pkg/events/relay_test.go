package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	entries   []OutboxEntry
	published []uuid.UUID
	fetchErr  error
	markErr   error
}

func (f *fakeOutboxRepo) FetchUnpublished(_ context.Context, batchSize int) ([]OutboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if len(f.entries) > batchSize {
		return f.entries[:batchSize], nil
	}
	return f.entries, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.published = append(f.published, ids...)

	remaining := make([]OutboxEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		marked := false
		for _, id := range ids {
			if entry.ID == id {
				marked = true
				break
			}
		}
		if !marked {
			remaining = append(remaining, entry)
		}
	}
	f.entries = remaining
	return nil
}

func (f *fakeOutboxRepo) staged() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeSink struct {
	mu        sync.Mutex
	delivered []OutboxEntry
	err       error
}

func (f *fakeSink) Deliver(_ context.Context, entries ...OutboxEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, entries...)
	return nil
}

func (f *fakeSink) deliveredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

func stagedEntry(eventType string) OutboxEntry {
	return NewOutboxEntry(NewBaseEvent(eventType, uuid.New(), "profile_analysis", []byte(`{}`)))
}

func TestRelayFlush(t *testing.T) {
	repo := &fakeOutboxRepo{entries: []OutboxEntry{
		stagedEntry("deepxcheck.analysis.completed"),
		stagedEntry("deepxcheck.analysis.high_risk_detected"),
	}}
	sink := &fakeSink{}
	relay := NewRelay(repo, sink, time.Second, 10, slog.Default())

	n, err := relay.Flush(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 delivered entries, got %d", n)
	}
	if len(sink.delivered) != 2 {
		t.Fatalf("expected sink to receive 2 entries, got %d", len(sink.delivered))
	}
	if len(repo.published) != 2 {
		t.Fatalf("expected 2 entries marked published, got %d", len(repo.published))
	}
	if sink.delivered[0].ID != repo.published[0] {
		t.Error("expected publish order to match delivery order")
	}
}

func TestRelayFlushEmpty(t *testing.T) {
	repo := &fakeOutboxRepo{}
	sink := &fakeSink{}
	relay := NewRelay(repo, sink, time.Second, 10, slog.Default())

	n, err := relay.Flush(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 entries, got %d", n)
	}
	if len(sink.delivered) != 0 {
		t.Error("expected no sink delivery on empty outbox")
	}
}

func TestRelayFlushRespectsBatchSize(t *testing.T) {
	repo := &fakeOutboxRepo{entries: []OutboxEntry{
		stagedEntry("e1"), stagedEntry("e2"), stagedEntry("e3"),
	}}
	sink := &fakeSink{}
	relay := NewRelay(repo, sink, time.Second, 2, slog.Default())

	n, err := relay.Flush(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected batch of 2, got %d", n)
	}

	n, err = relay.Flush(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected remaining 1, got %d", n)
	}
}

func TestRelayFlushSinkErrorLeavesEntriesStaged(t *testing.T) {
	repo := &fakeOutboxRepo{entries: []OutboxEntry{stagedEntry("e1")}}
	sink := &fakeSink{err: errors.New("broker down")}
	relay := NewRelay(repo, sink, time.Second, 10, slog.Default())

	_, err := relay.Flush(context.Background())
	if err == nil {
		t.Fatal("expected error when sink fails")
	}
	if len(repo.published) != 0 {
		t.Error("expected no entries marked published after sink failure")
	}
	if len(repo.entries) != 1 {
		t.Error("expected entry to stay staged for the next flush")
	}
}

func TestRelayFlushFetchError(t *testing.T) {
	repo := &fakeOutboxRepo{fetchErr: errors.New("connection lost")}
	relay := NewRelay(repo, &fakeSink{}, time.Second, 10, slog.Default())

	_, err := relay.Flush(context.Background())
	if err == nil {
		t.Fatal("expected error when fetch fails")
	}
}

func TestRelayRunDrainsAndStopsOnCancel(t *testing.T) {
	repo := &fakeOutboxRepo{entries: []OutboxEntry{stagedEntry("e1")}}
	sink := &fakeSink{}
	relay := NewRelay(repo, sink, 5*time.Millisecond, 10, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for repo.staged() > 0 {
		select {
		case <-deadline:
			t.Fatal("relay did not drain the outbox in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after context cancellation")
	}

	if sink.deliveredCount() == 0 {
		t.Error("expected delivered entries")
	}
}

func TestRelayDefaults(t *testing.T) {
	relay := NewRelay(&fakeOutboxRepo{}, &fakeSink{}, 0, 0, slog.Default())

	if relay.interval != defaultRelayInterval {
		t.Errorf("expected default interval %v, got %v", defaultRelayInterval, relay.interval)
	}
	if relay.batchSize != defaultRelayBatchSize {
		t.Errorf("expected default batch size %d, got %d", defaultRelayBatchSize, relay.batchSize)
	}
}
