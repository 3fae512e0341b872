package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	salegovernance "fungify/contexts/asset-governance/sale-governance-service"
	governanceerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	governancehttp "fungify/contexts/asset-governance/sale-governance-service/transport/http"
	shareledger "fungify/contexts/asset-governance/share-ledger-service"
	ledgererrors "fungify/contexts/asset-governance/share-ledger-service/domain/errors"
	ledgerhttp "fungify/contexts/asset-governance/share-ledger-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "fungify/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	ledger     shareledger.Module
	governance salegovernance.Module
}

func New(
	ledger shareledger.Module,
	governance salegovernance.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		ledger:     ledger,
		governance: governance,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/ledger/register", s.handleRegister)
	s.mux.HandleFunc("POST /v1/ledger/transfer", s.handleTransfer)
	s.mux.HandleFunc("GET /v1/ledger/accounts/{account_id}/balance", s.handleBalance)
	s.mux.HandleFunc("GET /v1/ledger/supply", s.handleSupply)
	s.mux.HandleFunc("GET /v1/ledger/holders", s.handleHolders)

	s.mux.HandleFunc("POST /v1/motions/sale", s.handleCreateSaleMotion)
	s.mux.HandleFunc("POST /v1/motions/generic", s.handleCreateGenericMotion)
	s.mux.HandleFunc("GET /v1/motions", s.handleListMotions)
	s.mux.HandleFunc("GET /v1/motions/{motion_id}", s.handleGetMotion)
	s.mux.HandleFunc("GET /v1/motions/{motion_id}/tally", s.handleTallyMotion)
	s.mux.HandleFunc("POST /v1/motions/{motion_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/motions/{motion_id}/withdraw", s.handleWithdrawMotion)
	s.mux.HandleFunc("POST /v1/motions/{motion_id}/finalize", s.handleFinalizeSaleMotion)
	s.mux.HandleFunc("POST /v1/cashout", s.handleCashout)
	s.mux.HandleFunc("GET /v1/status", s.handleStatus)

	// Internal completion callback; the use case only accepts the contract's
	// own identity as caller.
	s.mux.HandleFunc("POST /internal/v1/settlement/resolve", s.handleResolveSale)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ledgerhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.RegisterHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ledgerhttp.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.TransferHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.ledger.Handler.BalanceHandler(r.Context(), accountID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSupply(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.SupplyHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHolders(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.HoldersHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSaleMotion(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CreateSaleMotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CreateSaleMotionHandler(r.Context(), callerID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreateGenericMotion(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CreateGenericMotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CreateGenericMotionHandler(r.Context(), callerID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMotions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.ListMotionsHandler(r.Context())
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMotion(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.GetMotionHandler(r.Context(), r.PathValue("motion_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTallyMotion(w http.ResponseWriter, r *http.Request) {
	resp, err := s.governance.Handler.TallyMotionHandler(r.Context(), r.PathValue("motion_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CastVoteHandler(r.Context(), callerID, r.PathValue("motion_id"), req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawMotion(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.governance.Handler.WithdrawMotionHandler(r.Context(), callerID, r.PathValue("motion_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeSaleMotion(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.FinalizeSaleMotionHandler(r.Context(), callerID, r.PathValue("motion_id"), req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCashout(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CashoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CashoutHandler(r.Context(), callerID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveSale(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-Service-Id")
	if callerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_service", "X-Service-Id header is required")
		return
	}

	var req governancehttp.ResolveSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.ResolveSaleHandler(r.Context(), callerID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidDeposit):
		writeLedgerError(w, http.StatusBadRequest, "invalid_deposit", err.Error())
	case errors.Is(err, ledgererrors.ErrNotRegistered):
		writeLedgerError(w, http.StatusNotFound, "not_registered", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientShares):
		writeLedgerError(w, http.StatusConflict, "insufficient_shares", err.Error())
	case errors.Is(err, ledgererrors.ErrSupplyExceeded):
		writeLedgerError(w, http.StatusConflict, "supply_exceeded", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, governanceerrors.ErrInvalidInput):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, governanceerrors.ErrInvalidDeposit):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_deposit", err.Error())
	case errors.Is(err, governanceerrors.ErrInsufficientDeposit):
		writeGovernanceError(w, http.StatusBadRequest, "insufficient_deposit", err.Error())
	case errors.Is(err, governanceerrors.ErrDuplicateMotionID):
		writeGovernanceError(w, http.StatusConflict, "duplicate_motion_id", err.Error())
	case errors.Is(err, governanceerrors.ErrMotionNotFound):
		writeGovernanceError(w, http.StatusNotFound, "motion_not_found", err.Error())
	case errors.Is(err, governanceerrors.ErrNotSaleMotion):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "not_sale_motion", err.Error())
	case errors.Is(err, governanceerrors.ErrNotAuthorized):
		writeGovernanceError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, governanceerrors.ErrSaleInProgress):
		writeGovernanceError(w, http.StatusConflict, "sale_in_progress", err.Error())
	case errors.Is(err, governanceerrors.ErrAlreadySold):
		writeGovernanceError(w, http.StatusConflict, "already_sold", err.Error())
	case errors.Is(err, governanceerrors.ErrSettlementPending):
		writeGovernanceError(w, http.StatusConflict, "settlement_pending", err.Error())
	case errors.Is(err, governanceerrors.ErrNoSalePending):
		writeGovernanceError(w, http.StatusConflict, "no_sale_pending", err.Error())
	case errors.Is(err, governanceerrors.ErrNotSold):
		writeGovernanceError(w, http.StatusConflict, "not_sold", err.Error())
	default:
		writeGovernanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeGovernanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, governancehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
