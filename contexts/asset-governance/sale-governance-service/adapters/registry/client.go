package registryadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"

	"github.com/google/uuid"
)

// TopicAssetTransferRequested carries hand-off requests to the external
// custodian integration.
const TopicAssetTransferRequested = "asset.transfer.requested"

// Client issues asset hand-off requests over the event bus. The custodian
// integration consumes them and reports outcomes on the completion topic that
// the settlement consumer watches; the contract itself never blocks on the
// hand-off.
type Client struct {
	Publisher  ports.EventPublisher
	RegistryID string
	Logger     *slog.Logger
}

func (c Client) TransferAsset(ctx context.Context, receiverID string, assetID string, escortPayment uint64) error {
	receiverID = strings.TrimSpace(receiverID)
	assetID = strings.TrimSpace(assetID)
	if receiverID == "" || assetID == "" {
		return domainerrors.ErrInvalidInput
	}

	eventID := uuid.NewString()
	payload, err := json.Marshal(map[string]any{
		"registry_id":    c.RegistryID,
		"receiver_id":    receiverID,
		"asset_id":       assetID,
		"escort_payment": escortPayment,
	})
	if err != nil {
		return err
	}
	if err := c.Publisher.Publish(ctx, TopicAssetTransferRequested, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     TopicAssetTransferRequested,
		SourceService: "sale-governance-service",
		OccurredAt:    time.Now().UTC(),
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  assetID,
		Data:          payload,
	}); err != nil {
		return err
	}

	if c.Logger != nil {
		c.Logger.Info("asset hand-off requested",
			"event", "registry_asset_transfer_requested",
			"module", "asset-governance/sale-governance-service",
			"layer", "adapters/registry",
			"registry_id", c.RegistryID,
			"receiver_id", receiverID,
			"asset_id", assetID,
		)
	}
	return nil
}
