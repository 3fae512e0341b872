package commands

import (
	"context"
	"strings"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
)

// ResolveSale is the privileged completion callback of the settlement
// protocol. Only the contract's own identity may invoke it; it is the single
// code path allowed to clear the pending-sale marker.
//
// On hand-off failure the full captured payment returns to the receiver and
// both settlement fields clear, restoring the pre-capture financial state.
// On success only the motion fee returns; the captured payment stays as
// proceeds and the contract becomes terminal for sale purposes.
func (uc GovernanceUseCase) ResolveSale(
	ctx context.Context,
	callerID string,
	handoffSucceeded bool,
) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(callerID) != uc.SelfID {
		return false, domainerrors.ErrNotAuthorized
	}

	state, err := uc.Settlement.GetState(ctx)
	if err != nil {
		return false, err
	}
	if state.SaleInProgressID == nil || state.CashoutAmount == nil {
		return false, domainerrors.ErrNoSalePending
	}
	motionID := *state.SaleInProgressID
	captured := *state.CashoutAmount

	motion, err := uc.Motions.GetMotion(ctx, motionID)
	if err != nil {
		return false, err
	}
	sale, ok := motion.AsSale()
	if !ok {
		return false, domainerrors.ErrNotSaleMotion
	}

	if !handoffSucceeded {
		if err := uc.Payouts.Transfer(ctx, sale.ReceiverID, captured); err != nil {
			return false, err
		}
		if err := uc.Settlement.SaveState(ctx, entities.SettlementState{}); err != nil {
			return false, err
		}
		if err := uc.appendGovernanceEvent(ctx, "sale.reverted", motionID, map[string]any{
			"motion_id":   motionID,
			"receiver_id": sale.ReceiverID,
			"refund":      captured,
		}); err != nil {
			return false, err
		}
		logger.Warn("asset hand-off failed, sale reverted",
			"event", "governance_sale_reverted",
			"module", "asset-governance/sale-governance-service",
			"layer", "application",
			"motion_id", motionID,
			"receiver_id", sale.ReceiverID,
			"refund", captured,
		)
		return false, nil
	}

	if err := uc.Settlement.SaveState(ctx, entities.SettlementState{
		CashoutAmount: &captured,
	}); err != nil {
		return false, err
	}
	if err := uc.Payouts.Transfer(ctx, sale.ReceiverID, uc.MotionFee); err != nil {
		return false, err
	}
	if err := uc.appendGovernanceEvent(ctx, "sale.settled", motionID, map[string]any{
		"motion_id":   motionID,
		"receiver_id": sale.ReceiverID,
		"proceeds":    captured,
		"fee_refund":  uc.MotionFee,
	}); err != nil {
		return false, err
	}
	logger.Info("asset hand-off succeeded, sale settled",
		"event", "governance_sale_settled",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"receiver_id", sale.ReceiverID,
		"proceeds", captured,
	)
	return true, nil
}
