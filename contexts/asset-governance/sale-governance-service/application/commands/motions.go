package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "fungify/contexts/asset-governance/sale-governance-service/application"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

// GovernanceUseCase orchestrates the motion lifecycle, the settlement protocol
// and cashout. All entry points read the settlement state first: at most one
// sale may be in progress, and a completed sale makes the contract terminal
// for sale purposes.
type GovernanceUseCase struct {
	Motions    ports.MotionRepository
	Settlement ports.SettlementStateStore
	Ledger     ports.ShareLedger
	Registry   ports.AssetRegistry
	Payouts    ports.ValueTransfer
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator

	// Contract configuration, fixed at construction.
	SelfID                 string
	AssetID                string
	TotalSupply            uint64
	ParticipationThreshold uint64
	AcceptanceThreshold    uint64
	MotionFee              uint64
	EscortPayment          uint64

	Logger *slog.Logger
}

// CreateSaleMotion records a new sale motion with the caller as the intended
// receiver. The attached deposit must equal the motion fee exactly and the
// motion id must be unused.
func (uc GovernanceUseCase) CreateSaleMotion(
	ctx context.Context,
	callerID string,
	motionID string,
	salePrice uint64,
	attachedDeposit uint64,
) error {
	callerID = strings.TrimSpace(callerID)
	motionID = strings.TrimSpace(motionID)
	if callerID == "" || motionID == "" {
		return domainerrors.ErrInvalidInput
	}
	if attachedDeposit != uc.MotionFee {
		return domainerrors.ErrInvalidDeposit
	}

	now := uc.now()
	motion := entities.Motion{
		MotionID: motionID,
		Kind:     entities.MotionKindSale,
		Sale: &entities.SaleDetails{
			ReceiverID: callerID,
			SalePrice:  salePrice,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Motions.CreateMotion(ctx, motion); err != nil {
		return err
	}
	if err := uc.appendGovernanceEvent(ctx, "motion.created", motionID, map[string]any{
		"motion_id":   motionID,
		"kind":        string(entities.MotionKindSale),
		"receiver_id": callerID,
		"sale_price":  salePrice,
	}); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("sale motion created",
		"event", "governance_sale_motion_created",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"receiver_id", callerID,
		"sale_price", salePrice,
	)
	return nil
}

// CreateGenericMotion records a non-binding motion. It participates in voting
// but never in settlement.
func (uc GovernanceUseCase) CreateGenericMotion(
	ctx context.Context,
	callerID string,
	motionID string,
	description string,
	attachedDeposit uint64,
) error {
	callerID = strings.TrimSpace(callerID)
	motionID = strings.TrimSpace(motionID)
	if callerID == "" || motionID == "" || strings.TrimSpace(description) == "" {
		return domainerrors.ErrInvalidInput
	}
	if attachedDeposit != uc.MotionFee {
		return domainerrors.ErrInvalidDeposit
	}

	now := uc.now()
	motion := entities.Motion{
		MotionID: motionID,
		Kind:     entities.MotionKindGeneric,
		Generic: &entities.GenericDetails{
			InitiatorID: callerID,
			Description: strings.TrimSpace(description),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Motions.CreateMotion(ctx, motion); err != nil {
		return err
	}
	if err := uc.appendGovernanceEvent(ctx, "motion.created", motionID, map[string]any{
		"motion_id":    motionID,
		"kind":         string(entities.MotionKindGeneric),
		"initiator_id": callerID,
	}); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("generic motion created",
		"event", "governance_generic_motion_created",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"initiator_id", callerID,
	)
	return nil
}

// CastVote appends the caller to the chosen ballot set. Ballots are not
// deduplicated across repeated calls; this mirrors the governing contract and
// is flagged in DESIGN.md rather than silently changed.
func (uc GovernanceUseCase) CastVote(
	ctx context.Context,
	callerID string,
	motionID string,
	choice entities.VoteChoice,
) error {
	callerID = strings.TrimSpace(callerID)
	motionID = strings.TrimSpace(motionID)
	if callerID == "" || motionID == "" {
		return domainerrors.ErrInvalidInput
	}

	motion, err := uc.Motions.GetMotion(ctx, motionID)
	if err != nil {
		return err
	}
	if !motion.Votes.Record(callerID, choice) {
		return domainerrors.ErrInvalidInput
	}
	motion.UpdatedAt = uc.now()
	if err := uc.Motions.SaveMotion(ctx, motion); err != nil {
		return err
	}
	if err := uc.appendGovernanceEvent(ctx, "vote.cast", motionID, map[string]any{
		"motion_id":  motionID,
		"account_id": callerID,
		"choice":     string(choice),
	}); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("vote cast",
		"event", "governance_vote_cast",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"account_id", callerID,
		"choice", string(choice),
	)
	return nil
}

// WithdrawMotion removes a sale motion and refunds the motion fee to its
// receiver. A motion locked by a pending settlement cannot be withdrawn.
func (uc GovernanceUseCase) WithdrawMotion(
	ctx context.Context,
	callerID string,
	motionID string,
) error {
	callerID = strings.TrimSpace(callerID)
	motionID = strings.TrimSpace(motionID)
	if callerID == "" || motionID == "" {
		return domainerrors.ErrInvalidInput
	}

	motion, err := uc.Motions.GetMotion(ctx, motionID)
	if err != nil {
		return err
	}
	sale, ok := motion.AsSale()
	if !ok {
		return domainerrors.ErrNotSaleMotion
	}
	if sale.ReceiverID != callerID {
		return domainerrors.ErrNotAuthorized
	}

	state, err := uc.Settlement.GetState(ctx)
	if err != nil {
		return err
	}
	if state.SaleInProgressID != nil && *state.SaleInProgressID == motionID {
		return domainerrors.ErrSettlementPending
	}

	if err := uc.Motions.DeleteMotion(ctx, motionID); err != nil {
		return err
	}
	if err := uc.Payouts.Transfer(ctx, sale.ReceiverID, uc.MotionFee); err != nil {
		return err
	}
	if err := uc.appendGovernanceEvent(ctx, "motion.withdrawn", motionID, map[string]any{
		"motion_id":   motionID,
		"receiver_id": sale.ReceiverID,
		"fee_refund":  uc.MotionFee,
	}); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("sale motion withdrawn",
		"event", "governance_sale_motion_withdrawn",
		"module", "asset-governance/sale-governance-service",
		"layer", "application",
		"motion_id", motionID,
		"receiver_id", sale.ReceiverID,
	)
	return nil
}

func (uc GovernanceUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

// weightOf resolves the current vote weight of an account. Unregistered
// accounts and lookup failures weigh zero; the tally never aborts a call.
func (uc GovernanceUseCase) weightOf(ctx context.Context) func(string) uint64 {
	return func(accountID string) uint64 {
		balance, found, err := uc.Ledger.GetBalance(ctx, accountID)
		if err != nil || !found {
			return 0
		}
		return balance
	}
}
