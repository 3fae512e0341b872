package queries

import (
	"context"
	"testing"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/adapters/memory"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	ledgermemory "fungify/contexts/asset-governance/share-ledger-service/adapters/memory"
)

func newQueries(t *testing.T) (StatusQueries, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ledger := ledgermemory.NewStore()
	for account, balance := range map[string]uint64{"alice": 600, "bob": 400} {
		if _, err := ledger.CreateAccount(context.Background(), account, balance); err != nil {
			t.Fatalf("seed %s failed: %v", account, err)
		}
	}
	return StatusQueries{
		Motions:    store,
		Settlement: store,
		Ledger:     ledger,
	}, store
}

func seedMotion(t *testing.T, store *memory.Store, votes entities.Votes) {
	t.Helper()
	now := time.Now().UTC()
	err := store.CreateMotion(context.Background(), entities.Motion{
		MotionID:  "m-1",
		Kind:      entities.MotionKindSale,
		Sale:      &entities.SaleDetails{ReceiverID: "alice", SalePrice: 100},
		Votes:     votes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed motion failed: %v", err)
	}
}

func TestTallyMotionWeighsAgainstLedger(t *testing.T) {
	q, store := newQueries(t)
	seedMotion(t, store, entities.Votes{
		Accepting: []string{"alice", "ghost"},
		Rejecting: []string{"bob"},
	})

	tally, err := q.TallyMotion(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if tally.Participated != 1000 {
		t.Fatalf("expected participated 1000, got %d", tally.Participated)
	}
	if tally.Favorable != 600 {
		t.Fatalf("expected favorable 600, got %d", tally.Favorable)
	}
}

func TestGetMotionNotFound(t *testing.T) {
	q, _ := newQueries(t)
	if _, err := q.GetMotion(context.Background(), "missing"); err != domainerrors.ErrMotionNotFound {
		t.Fatalf("expected motion not found, got %v", err)
	}
}

func TestStatusReflectsSettlementState(t *testing.T) {
	q, store := newQueries(t)

	status, err := q.Status(context.Background())
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Sold || status.SaleInProgressID != nil {
		t.Fatalf("expected fresh contract status, got %+v", status)
	}

	amount := uint64(101)
	motionID := "m-1"
	if err := store.SaveState(context.Background(), entities.SettlementState{
		CashoutAmount:    &amount,
		SaleInProgressID: &motionID,
	}); err != nil {
		t.Fatalf("save state failed: %v", err)
	}

	status, err = q.Status(context.Background())
	if err != nil {
		t.Fatalf("second status failed: %v", err)
	}
	if !status.Sold || status.SaleInProgressID == nil || *status.SaleInProgressID != "m-1" {
		t.Fatalf("expected pending settlement visible, got %+v", status)
	}
}
