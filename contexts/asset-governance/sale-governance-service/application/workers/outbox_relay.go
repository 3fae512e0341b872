package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

// OutboxRelay drains pending outbox rows and publishes them to the bus,
// topic-per-event-type. Rows that fail to publish stay pending for the next
// pass.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 100
	}
	messages, err := r.Outbox.ListPendingOutbox(ctx, batch)
	if err != nil {
		return err
	}

	logger := application.ResolveLogger(r.Logger)
	for _, message := range messages {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload malformed",
				"event", "outbox_relay_payload_malformed",
				"module", "asset-governance/sale-governance-service",
				"layer", "application",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			continue
		}
		if err := r.Publisher.Publish(ctx, message.EventType, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_relay_publish_failed",
				"module", "asset-governance/sale-governance-service",
				"layer", "application",
				"outbox_id", message.OutboxID,
				"event_type", message.EventType,
				"error", err.Error(),
			)
			continue
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, message.OutboxID, r.Clock.Now()); err != nil {
			return err
		}
	}
	return nil
}
