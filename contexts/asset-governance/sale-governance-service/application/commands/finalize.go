package commands

import (
	"context"
	"strings"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
)

// FinalizeSaleMotion tallies a sale motion and, when both thresholds are met,
// commits the settlement state and issues the external asset hand-off.
//
// A threshold miss is not an error: it returns approved=false with a log
// notice and leaves all state unchanged. The attached deposit of a rejected
// attempt is neither consumed nor refunded; that gap is deliberate (see
// DESIGN.md).
func (uc GovernanceUseCase) FinalizeSaleMotion(
	ctx context.Context,
	callerID string,
	motionID string,
	attachedDeposit uint64,
) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID = strings.TrimSpace(callerID)
	motionID = strings.TrimSpace(motionID)
	if callerID == "" || motionID == "" {
		return false, domainerrors.ErrInvalidInput
	}

	motion, err := uc.Motions.GetMotion(ctx, motionID)
	if err != nil {
		return false, err
	}
	sale, ok := motion.AsSale()
	if !ok {
		return false, domainerrors.ErrNotSaleMotion
	}
	if sale.ReceiverID != callerID {
		return false, domainerrors.ErrNotAuthorized
	}
	// The extra unit over the sale price keeps the captured payment strictly
	// distinguishable from the price and reserves settlement margin.
	if attachedDeposit < sale.SalePrice+1 {
		return false, domainerrors.ErrInsufficientDeposit
	}

	state, err := uc.Settlement.GetState(ctx)
	if err != nil {
		return false, err
	}
	if state.SaleInProgress() {
		return false, domainerrors.ErrSaleInProgress
	}
	if state.Sold() {
		return false, domainerrors.ErrAlreadySold
	}

	tally := entities.TallyVotes(motion.Votes, uc.weightOf(ctx))
	if tally.Participated < uc.ParticipationThreshold {
		logger.Warn("participation threshold not reached, motion rejected",
			"event", "governance_finalize_participation_rejected",
			"module", "asset-governance/sale-governance-service",
			"layer", "application",
			"motion_id", motionID,
			"participated", tally.Participated,
			"participation_threshold", uc.ParticipationThreshold,
		)
		return false, nil
	}
	if tally.Favorable < uc.AcceptanceThreshold {
		logger.Warn("acceptance threshold not reached, motion rejected",
			"event", "governance_finalize_acceptance_rejected",
			"module", "asset-governance/sale-governance-service",
			"layer", "application",
			"motion_id", motionID,
			"favorable", tally.Favorable,
			"acceptance_threshold", uc.AcceptanceThreshold,
		)
		return false, nil
	}

	// Commit: both fields become visible together. The motion record stays in
	// the store so the resolve path can still read receiver and price.
	captured := attachedDeposit
	committed := entities.SettlementState{
		CashoutAmount:    &captured,
		SaleInProgressID: &motionID,
	}
	if err := uc.Settlement.SaveState(ctx, committed); err != nil {
		return false, err
	}

	if err := uc.Registry.TransferAsset(ctx, sale.ReceiverID, uc.AssetID, uc.EscortPayment); err != nil {
		// The hand-off request could not even be issued; restore the
		// pre-capture state so the receiver can finalize again.
		if revertErr := uc.Settlement.SaveState(ctx, entities.SettlementState{}); revertErr != nil {
			return false, revertErr
		}
		return false, err
	}

	if err := uc.appendGovernanceEvent(ctx, "sale.settlement_started", motionID, map[string]any{
		"motion_id":        motionID,
		"receiver_id":      sale.ReceiverID,
		"sale_price":       sale.SalePrice,
		"captured_payment": captured,
		"asset_id":         uc.AssetID,
	}); err != nil {
		return false, err
	}

	logger.Info("sale motion approved, settlement pending",
		"event", "governance_sale_settlement_started",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"receiver_id", sale.ReceiverID,
		"captured_payment", captured,
		"participated", tally.Participated,
		"favorable", tally.Favorable,
	)
	return true, nil
}
