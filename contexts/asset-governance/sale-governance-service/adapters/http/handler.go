package httpadapter

import (
	"context"
	"log/slog"

	"fungify/contexts/asset-governance/sale-governance-service/application/commands"
	"fungify/contexts/asset-governance/sale-governance-service/application/queries"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	httptransport "fungify/contexts/asset-governance/sale-governance-service/transport/http"
)

type Handler struct {
	Governance commands.GovernanceUseCase
	Queries    queries.StatusQueries
	Logger     *slog.Logger
}

func (h Handler) CreateSaleMotionHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreateSaleMotionRequest,
) (httptransport.CreateMotionResponse, error) {
	err := h.Governance.CreateSaleMotion(ctx, callerID, req.MotionID, req.SalePrice, req.AttachedDeposit)
	if err != nil {
		return httptransport.CreateMotionResponse{}, err
	}
	return httptransport.CreateMotionResponse{
		Status:   "success",
		MotionID: req.MotionID,
	}, nil
}

func (h Handler) CreateGenericMotionHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreateGenericMotionRequest,
) (httptransport.CreateMotionResponse, error) {
	err := h.Governance.CreateGenericMotion(ctx, callerID, req.MotionID, req.Description, req.AttachedDeposit)
	if err != nil {
		return httptransport.CreateMotionResponse{}, err
	}
	return httptransport.CreateMotionResponse{
		Status:   "success",
		MotionID: req.MotionID,
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	callerID string,
	motionID string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	err := h.Governance.CastVote(ctx, callerID, motionID, entities.VoteChoice(req.Choice))
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{Status: "success"}, nil
}

func (h Handler) WithdrawMotionHandler(
	ctx context.Context,
	callerID string,
	motionID string,
) (httptransport.WithdrawMotionResponse, error) {
	if err := h.Governance.WithdrawMotion(ctx, callerID, motionID); err != nil {
		return httptransport.WithdrawMotionResponse{}, err
	}
	return httptransport.WithdrawMotionResponse{Status: "success"}, nil
}

func (h Handler) FinalizeSaleMotionHandler(
	ctx context.Context,
	callerID string,
	motionID string,
	req httptransport.FinalizeRequest,
) (httptransport.FinalizeResponse, error) {
	approved, err := h.Governance.FinalizeSaleMotion(ctx, callerID, motionID, req.AttachedDeposit)
	if err != nil {
		return httptransport.FinalizeResponse{}, err
	}
	return httptransport.FinalizeResponse{
		Status:   "success",
		Approved: approved,
	}, nil
}

// ResolveSaleHandler is the privileged completion callback; the server wires
// it behind the contract's own identity, never behind end-user auth.
func (h Handler) ResolveSaleHandler(
	ctx context.Context,
	callerID string,
	req httptransport.ResolveSaleRequest,
) (httptransport.ResolveSaleResponse, error) {
	settled, err := h.Governance.ResolveSale(ctx, callerID, req.Succeeded)
	if err != nil {
		return httptransport.ResolveSaleResponse{}, err
	}
	return httptransport.ResolveSaleResponse{
		Status:  "success",
		Settled: settled,
	}, nil
}

func (h Handler) CashoutHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CashoutRequest,
) (httptransport.CashoutResponse, error) {
	payout, err := h.Governance.Cashout(ctx, callerID, req.AttachedDeposit)
	if err != nil {
		return httptransport.CashoutResponse{}, err
	}
	return httptransport.CashoutResponse{
		Status: "success",
		Payout: payout,
	}, nil
}

func (h Handler) GetMotionHandler(ctx context.Context, motionID string) (httptransport.MotionResponse, error) {
	motion, err := h.Queries.GetMotion(ctx, motionID)
	if err != nil {
		return httptransport.MotionResponse{}, err
	}
	return httptransport.MotionResponse{
		Status: "success",
		Data:   mapMotion(motion),
	}, nil
}

func (h Handler) ListMotionsHandler(ctx context.Context) (httptransport.MotionListResponse, error) {
	motions, err := h.Queries.ListMotions(ctx)
	if err != nil {
		return httptransport.MotionListResponse{}, err
	}
	resp := httptransport.MotionListResponse{
		Status: "success",
		Data:   make([]httptransport.MotionDTO, 0, len(motions)),
	}
	for _, motion := range motions {
		resp.Data = append(resp.Data, mapMotion(motion))
	}
	return resp, nil
}

func (h Handler) TallyMotionHandler(ctx context.Context, motionID string) (httptransport.TallyResponse, error) {
	tally, err := h.Queries.TallyMotion(ctx, motionID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		Status:       "success",
		MotionID:     motionID,
		Participated: tally.Participated,
		Favorable:    tally.Favorable,
	}, nil
}

func (h Handler) StatusHandler(ctx context.Context) (httptransport.StatusResponse, error) {
	status, err := h.Queries.Status(ctx)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Status:           "success",
		Sold:             status.Sold,
		CashoutAmount:    status.CashoutAmount,
		SaleInProgressID: status.SaleInProgressID,
	}, nil
}

func mapMotion(motion entities.Motion) httptransport.MotionDTO {
	dto := httptransport.MotionDTO{
		MotionID: motion.MotionID,
		Kind:     string(motion.Kind),
		Votes: httptransport.VotesDTO{
			Accepting:   append([]string{}, motion.Votes.Accepting...),
			Rejecting:   append([]string{}, motion.Votes.Rejecting...),
			Indifferent: append([]string{}, motion.Votes.Indifferent...),
		},
	}
	if motion.Sale != nil {
		dto.Sale = &httptransport.SaleDetailsDTO{
			ReceiverID: motion.Sale.ReceiverID,
			SalePrice:  motion.Sale.SalePrice,
		}
	}
	if motion.Generic != nil {
		dto.Generic = &httptransport.GenericDetailsDTO{
			InitiatorID: motion.Generic.InitiatorID,
			Description: motion.Generic.Description,
		}
	}
	return dto
}
