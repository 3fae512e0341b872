package httpadapter

import (
	"context"
	"log/slog"

	"fungify/contexts/asset-governance/share-ledger-service/application"
	httptransport "fungify/contexts/asset-governance/share-ledger-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterRequest,
) (httptransport.RegisterResponse, error) {
	created, err := h.Service.Register(ctx, callerID, req.AttachedDeposit)
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{
		Status:    "success",
		AccountID: callerID,
		Created:   created,
	}, nil
}

func (h Handler) TransferHandler(
	ctx context.Context,
	callerID string,
	req httptransport.TransferRequest,
) (httptransport.TransferResponse, error) {
	if err := h.Service.Transfer(ctx, callerID, req.ReceiverID, req.Amount, req.AttachedDeposit); err != nil {
		return httptransport.TransferResponse{}, err
	}
	return httptransport.TransferResponse{Status: "success"}, nil
}

func (h Handler) BalanceHandler(
	ctx context.Context,
	accountID string,
) (httptransport.BalanceResponse, error) {
	balance, err := h.Service.BalanceOf(ctx, accountID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		Status:    "success",
		AccountID: accountID,
		Balance:   balance,
	}, nil
}

func (h Handler) SupplyHandler(context.Context) (httptransport.SupplyResponse, error) {
	return httptransport.SupplyResponse{
		Status:      "success",
		TotalSupply: h.Service.Supply(),
	}, nil
}

func (h Handler) HoldersHandler(ctx context.Context) (httptransport.HoldersResponse, error) {
	holdings, err := h.Service.Holders(ctx)
	if err != nil {
		return httptransport.HoldersResponse{}, err
	}
	resp := httptransport.HoldersResponse{
		Status: "success",
		Data:   make([]httptransport.HoldingDTO, 0, len(holdings)),
	}
	for _, holding := range holdings {
		resp.Data = append(resp.Data, httptransport.HoldingDTO{
			AccountID: holding.AccountID,
			Balance:   holding.Balance,
		})
	}
	return resp, nil
}
