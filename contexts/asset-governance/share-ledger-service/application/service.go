package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "fungify/contexts/asset-governance/share-ledger-service/domain/errors"
	"fungify/contexts/asset-governance/share-ledger-service/ports"
)

// ConfirmationDeposit is the one-unit deposit a caller attaches to
// balance-moving operations as an intent confirmation.
const ConfirmationDeposit uint64 = 1

type Service struct {
	Ledger          ports.LedgerRepository
	Outbox          ports.OutboxWriter
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	TotalSupply     uint64
	RegistrationFee uint64
	DeployerID      string
	Logger          *slog.Logger
}

// SeedInitialAllocation assigns the full supply to the deployer once. The
// ledger otherwise has no mint path; shares circulate only through transfers.
func (s Service) SeedInitialAllocation(ctx context.Context) error {
	deployer := strings.TrimSpace(s.DeployerID)
	if deployer == "" {
		return domainerrors.ErrInvalidInput
	}
	created, err := s.Ledger.CreateAccount(ctx, deployer, s.TotalSupply)
	if err != nil {
		return err
	}
	if created {
		resolveLogger(s.Logger).Info("initial allocation seeded",
			"event", "ledger_initial_allocation_seeded",
			"module", "asset-governance/share-ledger-service",
			"layer", "application",
			"deployer_id", deployer,
			"total_supply", s.TotalSupply,
		)
	}
	return nil
}

// Register creates the caller's ledger entry with a zero balance. The attached
// deposit must equal the registration fee exactly. Registering an account that
// already exists keeps its balance; balances change only through transfers and
// cashout.
func (s Service) Register(ctx context.Context, callerID string, attachedDeposit uint64) (bool, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return false, domainerrors.ErrInvalidInput
	}
	if attachedDeposit != s.RegistrationFee {
		return false, domainerrors.ErrInvalidDeposit
	}

	created, err := s.Ledger.CreateAccount(ctx, callerID, 0)
	if err != nil {
		return false, err
	}
	if created {
		if err := s.appendLedgerEvent(ctx, "account.registered", callerID, map[string]any{
			"account_id": callerID,
		}); err != nil {
			return false, err
		}
	}
	resolveLogger(s.Logger).Info("owner registered",
		"event", "ledger_owner_registered",
		"module", "asset-governance/share-ledger-service",
		"layer", "application",
		"account_id", callerID,
		"created", created,
	)
	return created, nil
}

// BalanceOf returns the account's share balance and fails for accounts that
// never registered. Zero is a valid balance for a registered account.
func (s Service) BalanceOf(ctx context.Context, accountID string) (uint64, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return 0, domainerrors.ErrInvalidInput
	}
	balance, found, err := s.Ledger.GetBalance(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domainerrors.ErrNotRegistered
	}
	return balance, nil
}

// Supply returns the fixed total share supply set at construction.
func (s Service) Supply() uint64 {
	return s.TotalSupply
}

// Transfer moves shares between two registered accounts. The sender balance
// must be strictly greater than the amount, so a holder cannot move their
// entire balance in one call; the strict comparison is kept deliberately
// rather than silently relaxed.
func (s Service) Transfer(
	ctx context.Context,
	callerID string,
	receiverID string,
	amount uint64,
	attachedDeposit uint64,
) error {
	callerID = strings.TrimSpace(callerID)
	receiverID = strings.TrimSpace(receiverID)
	if callerID == "" || receiverID == "" {
		return domainerrors.ErrInvalidInput
	}
	if callerID == receiverID {
		// A self-transfer would credit and debit the same row and could mint
		// shares past the supply bound.
		return domainerrors.ErrInvalidInput
	}
	if attachedDeposit != ConfirmationDeposit {
		return domainerrors.ErrInvalidDeposit
	}

	senderBalance, found, err := s.Ledger.GetBalance(ctx, callerID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrNotRegistered
	}
	receiverBalance, found, err := s.Ledger.GetBalance(ctx, receiverID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrNotRegistered
	}
	if senderBalance <= amount {
		return domainerrors.ErrInsufficientShares
	}

	if err := s.Ledger.UpdateBalances(ctx, []ports.BalanceUpdate{
		{AccountID: callerID, Balance: senderBalance - amount},
		{AccountID: receiverID, Balance: receiverBalance + amount},
	}); err != nil {
		return err
	}

	if err := s.appendLedgerEvent(ctx, "share.transferred", callerID, map[string]any{
		"sender_id":   callerID,
		"receiver_id": receiverID,
		"amount":      amount,
	}); err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("shares transferred",
		"event", "ledger_shares_transferred",
		"module", "asset-governance/share-ledger-service",
		"layer", "application",
		"sender_id", callerID,
		"receiver_id", receiverID,
		"amount", amount,
	)
	return nil
}

// Holders lists every registered account with its balance.
func (s Service) Holders(ctx context.Context) ([]ports.Holding, error) {
	return s.Ledger.ListHoldings(ctx)
}

func (s Service) appendLedgerEvent(ctx context.Context, eventType string, partitionKey string, data map[string]any) error {
	if s.Outbox == nil {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "share-ledger-service",
		OccurredAt:    s.now(),
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  partitionKey,
		Data:          payload,
	})
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
