package ports

import (
	"context"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	"fungify/internal/shared/events"
)

type MotionRepository interface {
	CreateMotion(ctx context.Context, motion entities.Motion) error
	GetMotion(ctx context.Context, motionID string) (entities.Motion, error)
	SaveMotion(ctx context.Context, motion entities.Motion) error
	DeleteMotion(ctx context.Context, motionID string) error
	ListMotions(ctx context.Context) ([]entities.Motion, error)
}

// SettlementStateStore persists the contract-level settlement machine.
// SaveState must write both optional fields together so no intermediate state
// is ever observable.
type SettlementStateStore interface {
	GetState(ctx context.Context) (entities.SettlementState, error)
	SaveState(ctx context.Context, state entities.SettlementState) error
}

// ShareLedger is the governance-side view of the ownership ledger. GetBalance
// reports found=false for unregistered accounts instead of failing, which
// lets the tally weigh them as zero.
type ShareLedger interface {
	GetBalance(ctx context.Context, accountID string) (uint64, bool, error)
	ZeroBalance(ctx context.Context, accountID string) error
}

// AssetRegistry issues the external asset hand-off request. The call only
// confirms the request was issued; completion arrives later through the
// privileged resolve path.
type AssetRegistry interface {
	TransferAsset(ctx context.Context, receiverID string, assetID string, escortPayment uint64) error
}

// ValueTransfer pays native value out of the contract's balance. Transfers
// are fire-and-forget from the core's perspective.
type ValueTransfer interface {
	Transfer(ctx context.Context, accountID string, amount uint64) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}
