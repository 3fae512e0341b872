package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	salegovernance "fungify/contexts/asset-governance/sale-governance-service"
	shareledger "fungify/contexts/asset-governance/share-ledger-service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	ledgerModule := shareledger.NewInMemoryModule(1000, "deployer", nil)
	governanceModule := salegovernance.NewInMemoryModule(salegovernance.Config{
		SelfID:                 "fungify",
		AssetID:                "vessel-1",
		TotalSupply:            1000,
		ParticipationThreshold: 700,
		AcceptanceThreshold:    500,
		MotionFee:              10,
		EscortPayment:          1,
	}, ledgerModule.Store, nil)
	return New(ledgerModule, governanceModule, nil, ":0")
}

func doJSON(t *testing.T, server *Server, method string, path string, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestRegisterRequiresUserHeader(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodPost, "/v1/ledger/register", "", map[string]any{
		"attached_deposit": 1000,
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterAndBalance(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodPost, "/v1/ledger/register", "alice", map[string]any{
		"attached_deposit": 1000,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/ledger/accounts/alice/balance", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterWrongDepositRejected(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodPost, "/v1/ledger/register", "alice", map[string]any{
		"attached_deposit": 999,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBalanceOfUnknownAccountIs404(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodGet, "/v1/ledger/accounts/ghost/balance", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateSaleMotionAndDuplicateConflict(t *testing.T) {
	server := newTestServer(t)
	payload := map[string]any{
		"motion_id":        "m-1",
		"sale_price":       100,
		"attached_deposit": 10,
	}
	rr := doJSON(t, server, http.MethodPost, "/v1/motions/sale", "alice", payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, server, http.MethodPost, "/v1/motions/sale", "alice", payload)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate motion id, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestFinalizeByNonReceiverForbidden(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodPost, "/v1/motions/sale", "alice", map[string]any{
		"motion_id":        "m-1",
		"sale_price":       100,
		"attached_deposit": 10,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/motions/m-1/finalize", "bob", map[string]any{
		"attached_deposit": 101,
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResolveSaleRejectsForeignService(t *testing.T) {
	server := newTestServer(t)

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(map[string]any{"succeeded": true}); err != nil {
		t.Fatalf("encode request failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/internal/v1/settlement/resolve", &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Id", "intruder")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodGet, "/v1/status", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Sold   bool   `json:"sold"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Status != "success" || resp.Sold {
		t.Fatalf("expected fresh unsold status, got %+v", resp)
	}
}
