package queries

import (
	"context"
	"log/slog"
	"strings"

	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

// StatusQueries serves the read side: motion lookups, dry-run tallies and the
// contract settlement status.
type StatusQueries struct {
	Motions    ports.MotionRepository
	Settlement ports.SettlementStateStore
	Ledger     ports.ShareLedger
	Logger     *slog.Logger
}

type ContractStatus struct {
	Sold             bool
	CashoutAmount    *uint64
	SaleInProgressID *string
}

func (q StatusQueries) GetMotion(ctx context.Context, motionID string) (entities.Motion, error) {
	motionID = strings.TrimSpace(motionID)
	if motionID == "" {
		return entities.Motion{}, domainerrors.ErrInvalidInput
	}
	return q.Motions.GetMotion(ctx, motionID)
}

func (q StatusQueries) ListMotions(ctx context.Context) ([]entities.Motion, error) {
	return q.Motions.ListMotions(ctx)
}

// TallyMotion computes the current weights of a motion without mutating
// anything; finalize runs the same tally against the same ledger.
func (q StatusQueries) TallyMotion(ctx context.Context, motionID string) (entities.TallyResult, error) {
	motion, err := q.GetMotion(ctx, motionID)
	if err != nil {
		return entities.TallyResult{}, err
	}
	return entities.TallyVotes(motion.Votes, func(accountID string) uint64 {
		balance, found, lookupErr := q.Ledger.GetBalance(ctx, accountID)
		if lookupErr != nil || !found {
			return 0
		}
		return balance
	}), nil
}

func (q StatusQueries) Status(ctx context.Context) (ContractStatus, error) {
	state, err := q.Settlement.GetState(ctx)
	if err != nil {
		return ContractStatus{}, err
	}
	return ContractStatus{
		Sold:             state.Sold(),
		CashoutAmount:    state.CashoutAmount,
		SaleInProgressID: state.SaleInProgressID,
	}, nil
}
