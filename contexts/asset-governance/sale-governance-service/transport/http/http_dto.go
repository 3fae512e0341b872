package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSaleMotionRequest struct {
	MotionID        string `json:"motion_id"`
	SalePrice       uint64 `json:"sale_price"`
	AttachedDeposit uint64 `json:"attached_deposit"`
}

type CreateGenericMotionRequest struct {
	MotionID        string `json:"motion_id"`
	Description     string `json:"description"`
	AttachedDeposit uint64 `json:"attached_deposit"`
}

type CreateMotionResponse struct {
	Status   string `json:"status"`
	MotionID string `json:"motion_id"`
}

type CastVoteRequest struct {
	Choice string `json:"choice"`
}

type CastVoteResponse struct {
	Status string `json:"status"`
}

type WithdrawMotionResponse struct {
	Status string `json:"status"`
}

type FinalizeRequest struct {
	AttachedDeposit uint64 `json:"attached_deposit"`
}

type FinalizeResponse struct {
	Status   string `json:"status"`
	Approved bool   `json:"approved"`
}

type ResolveSaleRequest struct {
	Succeeded bool `json:"succeeded"`
}

type ResolveSaleResponse struct {
	Status  string `json:"status"`
	Settled bool   `json:"settled"`
}

type CashoutRequest struct {
	AttachedDeposit uint64 `json:"attached_deposit"`
}

type CashoutResponse struct {
	Status string `json:"status"`
	Payout uint64 `json:"payout"`
}

type SaleDetailsDTO struct {
	ReceiverID string `json:"receiver_id"`
	SalePrice  uint64 `json:"sale_price"`
}

type GenericDetailsDTO struct {
	InitiatorID string `json:"initiator_id"`
	Description string `json:"description"`
}

type VotesDTO struct {
	Accepting   []string `json:"accepting"`
	Rejecting   []string `json:"rejecting"`
	Indifferent []string `json:"indifferent"`
}

type MotionDTO struct {
	MotionID string             `json:"motion_id"`
	Kind     string             `json:"kind"`
	Sale     *SaleDetailsDTO    `json:"sale,omitempty"`
	Generic  *GenericDetailsDTO `json:"generic,omitempty"`
	Votes    VotesDTO           `json:"votes"`
}

type MotionResponse struct {
	Status string    `json:"status"`
	Data   MotionDTO `json:"data"`
}

type MotionListResponse struct {
	Status string      `json:"status"`
	Data   []MotionDTO `json:"data"`
}

type TallyResponse struct {
	Status       string `json:"status"`
	MotionID     string `json:"motion_id"`
	Participated uint64 `json:"participated_weight"`
	Favorable    uint64 `json:"favorable_weight"`
}

type StatusResponse struct {
	Status           string  `json:"status"`
	Sold             bool    `json:"sold"`
	CashoutAmount    *uint64 `json:"cashout_amount,omitempty"`
	SaleInProgressID *string `json:"sale_in_progress_id,omitempty"`
}
