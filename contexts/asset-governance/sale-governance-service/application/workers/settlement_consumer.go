package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	"fungify/contexts/asset-governance/sale-governance-service/application/commands"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

// TopicAssetTransferCompleted carries the asset registry's hand-off outcome
// back to the contract.
const TopicAssetTransferCompleted = "asset.transfer.completed"

type assetTransferCompletedEvent struct {
	AssetID    string `json:"asset_id"`
	ReceiverID string `json:"receiver_id"`
	Succeeded  bool   `json:"succeeded"`
}

// SettlementConsumer is the runtime bridge between the registry's completion
// events and the privileged resolve path. It invokes ResolveSale with the
// contract's own identity; that capability check is what keeps the resolve
// entry point closed to ordinary callers.
type SettlementConsumer struct {
	Subscriber    ports.EventSubscriber
	Governance    commands.GovernanceUseCase
	SelfID        string
	AssetID       string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c SettlementConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, TopicAssetTransferCompleted, c.ConsumerGroup, c.handle)
}

func (c SettlementConsumer) handle(ctx context.Context, envelope ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	var event assetTransferCompletedEvent
	if err := json.Unmarshal(envelope.Data, &event); err != nil {
		logger.Error("asset transfer completion event malformed",
			"event", "settlement_consumer_event_malformed",
			"module", "asset-governance/sale-governance-service",
			"layer", "application",
			"event_id", envelope.EventID,
			"error", err.Error(),
		)
		return err
	}
	if event.AssetID != c.AssetID {
		// Completion for another custodian's asset; not ours to resolve.
		return nil
	}

	sold, err := c.Governance.ResolveSale(ctx, c.SelfID, event.Succeeded)
	if err != nil {
		logger.Error("sale resolution failed",
			"event", "settlement_consumer_resolve_failed",
			"module", "asset-governance/sale-governance-service",
			"layer", "application",
			"event_id", envelope.EventID,
			"asset_id", event.AssetID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("sale resolved",
		"event", "settlement_consumer_resolved",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"event_id", envelope.EventID,
		"asset_id", event.AssetID,
		"sold", sold,
	)
	return nil
}
