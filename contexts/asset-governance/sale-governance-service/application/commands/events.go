package commands

import (
	"context"
	"encoding/json"

	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

// Governance events are partitioned by motion id (account id for cashout) so
// consumers observe a stable per-subject order.
func (uc GovernanceUseCase) appendGovernanceEvent(
	ctx context.Context,
	eventType string,
	partitionKey string,
	data map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "sale-governance-service",
		OccurredAt:    uc.now(),
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  partitionKey,
		Data:          payload,
	})
}
