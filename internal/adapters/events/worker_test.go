package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/memory"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/application"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/contracts"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/ports"
)

func payload(t *testing.T, event contracts.CommandExecutedEvent) []byte {
	t.Helper()
	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return raw
}

func TestWorkerDrainRecordsExecutions(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := memory.NewUsageTracker(64)
	svc := application.NewService(application.Dependencies{
		Logger:  logger,
		Cache:   memory.NewCommandCache(16),
		Tracker: tracker,
	})
	consumer := NewMemoryConsumer()
	worker := NewWorker(logger, consumer, svc, time.Second)

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	consumer.Seed([]ports.Message{
		{Topic: "bot.command.executed", Payload: payload(t, contracts.CommandExecutedEvent{
			EventID: "evt-1", CommandName: "dye", UserID: "alice", OccurredAt: ts, Success: true,
		})},
		{Topic: "bot.command.executed", Payload: payload(t, contracts.CommandExecutedEvent{
			CommandName: "match", UserID: "bob", OccurredAt: ts, Success: false, ErrorKind: "no_match",
		})},
		// Malformed payload is skipped, not fatal.
		{Topic: "bot.command.executed", Payload: []byte("{not json")},
		// Missing user id fails validation and is skipped.
		{Topic: "bot.command.executed", Payload: payload(t, contracts.CommandExecutedEvent{
			CommandName: "dye", OccurredAt: ts, Success: true,
		})},
	})

	if err := worker.Drain(context.Background()); err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	stats, err := tracker.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalCommands != 2 {
		t.Fatalf("expected 2 tracked events, got %d", stats.TotalCommands)
	}
	if stats.CommandBreakdown["dye"] != 1 || stats.CommandBreakdown["match"] != 1 {
		t.Fatalf("unexpected breakdown: %v", stats.CommandBreakdown)
	}
	if len(stats.RecentErrors) != 1 {
		t.Fatalf("expected one recorded failure, got %v", stats.RecentErrors)
	}
}

func TestWorkerDrainEmptyBus(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(application.Dependencies{
		Logger:  logger,
		Cache:   memory.NewCommandCache(16),
		Tracker: memory.NewUsageTracker(64),
	})
	worker := NewWorker(logger, NewMemoryConsumer(), svc, time.Second)

	if err := worker.Drain(context.Background()); err != nil {
		t.Fatalf("drain on empty bus failed: %v", err)
	}
}

func TestWorkerRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(application.Dependencies{
		Logger:  logger,
		Cache:   memory.NewCommandCache(16),
		Tracker: memory.NewUsageTracker(64),
	})
	worker := NewWorker(logger, NewMemoryConsumer(), svc, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop after context cancellation")
	}
}
