package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	AttachedDeposit uint64 `json:"attached_deposit"`
}

type RegisterResponse struct {
	Status    string `json:"status"`
	AccountID string `json:"account_id"`
	Created   bool   `json:"created"`
}

type TransferRequest struct {
	ReceiverID      string `json:"receiver_id"`
	Amount          uint64 `json:"amount"`
	AttachedDeposit uint64 `json:"attached_deposit"`
	Memo            string `json:"memo,omitempty"`
}

type TransferResponse struct {
	Status string `json:"status"`
}

type BalanceResponse struct {
	Status    string `json:"status"`
	AccountID string `json:"account_id"`
	Balance   uint64 `json:"balance"`
}

type SupplyResponse struct {
	Status      string `json:"status"`
	TotalSupply uint64 `json:"total_supply"`
}

type HoldingDTO struct {
	AccountID string `json:"account_id"`
	Balance   uint64 `json:"balance"`
}

type HoldersResponse struct {
	Status string       `json:"status"`
	Data   []HoldingDTO `json:"data"`
}
