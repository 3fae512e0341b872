package commands

import (
	"context"
	"math/big"
	"strings"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
)

// Precision is the fixed-point scaling constant used when converting a share
// balance into a fraction of the sale proceeds.
const Precision uint64 = 1_000_000

// Cashout pays the caller their proportional claim on the sale proceeds and
// zeroes their ledger balance. The zeroed balance is the idempotence
// guarantee: a second call computes a zero share and pays nothing. Callers
// that never registered receive zero without error, matching the weight-zero
// treatment in the tally.
func (uc GovernanceUseCase) Cashout(
	ctx context.Context,
	callerID string,
	attachedDeposit uint64,
) (uint64, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return 0, domainerrors.ErrInvalidInput
	}
	if attachedDeposit != 1 {
		return 0, domainerrors.ErrInvalidDeposit
	}

	state, err := uc.Settlement.GetState(ctx)
	if err != nil {
		return 0, err
	}
	if state.CashoutAmount == nil {
		return 0, domainerrors.ErrNotSold
	}

	balance, found, err := uc.Ledger.GetBalance(ctx, callerID)
	if err != nil {
		return 0, err
	}
	if !found || balance == 0 {
		return 0, nil
	}

	payout := proRataPayout(*state.CashoutAmount, balance, uc.TotalSupply)
	if err := uc.Payouts.Transfer(ctx, callerID, payout); err != nil {
		return 0, err
	}
	if err := uc.Ledger.ZeroBalance(ctx, callerID); err != nil {
		return 0, err
	}
	if err := uc.appendGovernanceEvent(ctx, "cashout.paid", callerID, map[string]any{
		"account_id": callerID,
		"balance":    balance,
		"payout":     payout,
	}); err != nil {
		return 0, err
	}

	application.ResolveLogger(uc.Logger).Info("cashout paid",
		"event", "governance_cashout_paid",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"account_id", callerID,
		"balance", balance,
		"payout", payout,
	)
	return payout, nil
}

// proRataPayout computes cashoutAmount * (balance * Precision / totalSupply)
// / Precision without floating point. The intermediate products can exceed 64
// bits, so the math runs over big integers and truncates at both divisions.
func proRataPayout(cashoutAmount uint64, balance uint64, totalSupply uint64) uint64 {
	if totalSupply == 0 {
		return 0
	}
	share := new(big.Int).Mul(
		new(big.Int).SetUint64(balance),
		new(big.Int).SetUint64(Precision),
	)
	share.Quo(share, new(big.Int).SetUint64(totalSupply))

	payout := new(big.Int).Mul(new(big.Int).SetUint64(cashoutAmount), share)
	payout.Quo(payout, new(big.Int).SetUint64(Precision))
	return payout.Uint64()
}
