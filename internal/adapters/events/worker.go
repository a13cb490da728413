package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/application"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/contracts"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/ports"
)

const pollBatchSize = 32

// Worker polls the command layer's bus and feeds executions into the usage
// tracker. Malformed payloads are logged and skipped; analytics ingestion
// never retries, matching the fire-and-forget contract.
type Worker struct {
	logger       *slog.Logger
	consumer     ports.EventConsumer
	service      *application.Service
	pollInterval time.Duration
}

func NewWorker(logger *slog.Logger, consumer ports.EventConsumer, service *application.Service, pollInterval time.Duration) *Worker {
	return &Worker{logger: logger, consumer: consumer, service: service, pollInterval: pollInterval}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.Drain(ctx); err != nil {
				return err
			}
		}
	}
}

// Drain consumes one poll batch. Split out of Run so tests can drive the
// worker without the ticker.
func (w *Worker) Drain(ctx context.Context) error {
	if w.consumer == nil {
		return nil
	}
	messages, err := w.consumer.Poll(ctx, pollBatchSize)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	for _, msg := range messages {
		var envelope contracts.CommandExecutedEvent
		if unmarshalErr := json.Unmarshal(msg.Payload, &envelope); unmarshalErr != nil {
			w.logger.WarnContext(ctx, "malformed command event skipped",
				"topic", msg.Topic, "error", unmarshalErr)
			continue
		}
		if envelope.EventID == "" {
			envelope.EventID = uuid.NewString()
		}
		if recordErr := w.service.RecordCommand(ctx, domain.CommandEvent{
			CommandName: envelope.CommandName,
			UserID:      envelope.UserID,
			GuildID:     envelope.GuildID,
			Timestamp:   envelope.OccurredAt,
			Success:     envelope.Success,
			ErrorKind:   envelope.ErrorKind,
		}); recordErr != nil {
			w.logger.WarnContext(ctx, "invalid command event skipped",
				"event_id", envelope.EventID, "error", recordErr)
		}
	}
	return nil
}
