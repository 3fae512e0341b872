package ports

import (
	"context"
	"time"

	"fungify/internal/shared/events"
)

type Holding struct {
	AccountID string
	Balance   uint64
}

type BalanceUpdate struct {
	AccountID string
	Balance   uint64
}

// LedgerRepository persists account share balances. Implementations must apply
// UpdateBalances atomically: either every update lands or none does.
type LedgerRepository interface {
	CreateAccount(ctx context.Context, accountID string, balance uint64) (bool, error)
	GetBalance(ctx context.Context, accountID string) (uint64, bool, error)
	UpdateBalances(ctx context.Context, updates []BalanceUpdate) error
	ListHoldings(ctx context.Context) ([]Holding, error)
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
