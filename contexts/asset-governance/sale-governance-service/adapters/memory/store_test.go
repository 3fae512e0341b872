package memory

import (
	"context"
	"testing"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

func saleMotion(motionID string) entities.Motion {
	now := time.Now().UTC()
	return entities.Motion{
		MotionID:  motionID,
		Kind:      entities.MotionKindSale,
		Sale:      &entities.SaleDetails{ReceiverID: "alice", SalePrice: 100},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateMotionRejectsDuplicate(t *testing.T) {
	store := NewStore()
	if err := store.CreateMotion(context.Background(), saleMotion("m-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.CreateMotion(context.Background(), saleMotion("m-1")); err != domainerrors.ErrDuplicateMotionID {
		t.Fatalf("expected duplicate motion id, got %v", err)
	}
}

func TestGetMotionReturnsDefensiveCopy(t *testing.T) {
	store := NewStore()
	if err := store.CreateMotion(context.Background(), saleMotion("m-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := store.GetMotion(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	first.Votes.Record("mallory", entities.VoteChoiceAccept)
	first.Sale.SalePrice = 1

	second, err := store.GetMotion(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if len(second.Votes.Accepting) != 0 {
		t.Fatal("mutating a returned motion must not affect the store")
	}
	if second.Sale.SalePrice != 100 {
		t.Fatalf("expected stored price 100, got %d", second.Sale.SalePrice)
	}
}

func TestSaveMotionRequiresExisting(t *testing.T) {
	store := NewStore()
	err := store.SaveMotion(context.Background(), saleMotion("missing"))
	if err != domainerrors.ErrMotionNotFound {
		t.Fatalf("expected motion not found, got %v", err)
	}
}

func TestSaveStateIsolatesCallerPointers(t *testing.T) {
	store := NewStore()
	amount := uint64(101)
	motionID := "m-1"
	if err := store.SaveState(context.Background(), entities.SettlementState{
		CashoutAmount:    &amount,
		SaleInProgressID: &motionID,
	}); err != nil {
		t.Fatalf("save state failed: %v", err)
	}

	amount = 999
	motionID = "tampered"

	state, err := store.GetState(context.Background())
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	if *state.CashoutAmount != 101 || *state.SaleInProgressID != "m-1" {
		t.Fatalf("expected stored state isolated from caller pointers, got %+v", state)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	store := NewStore()
	if err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:    "evt-1",
		EventType:  "motion.created",
		OccurredAt: time.Now().UTC(),
		Data:       []byte(`{}`),
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(pending))
	}

	if err := store.MarkOutboxPublished(context.Background(), "evt-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows, got %d", len(pending))
	}
}

func TestRegistryCompletesOldestRequestFirst(t *testing.T) {
	registry := NewRegistry()
	var resolved []bool
	registry.SetResolver(func(_ context.Context, succeeded bool) (bool, error) {
		resolved = append(resolved, succeeded)
		return succeeded, nil
	})

	if err := registry.TransferAsset(context.Background(), "alice", "vessel-1", 1); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := registry.TransferAsset(context.Background(), "bob", "vessel-1", 1); err != nil {
		t.Fatalf("second transfer failed: %v", err)
	}

	if _, err := registry.Complete(context.Background(), true); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if requests := registry.PendingRequests(); len(requests) != 1 || requests[0].ReceiverID != "bob" {
		t.Fatalf("expected bob's request to remain, got %+v", requests)
	}
	if len(resolved) != 1 || !resolved[0] {
		t.Fatalf("expected one successful resolution, got %v", resolved)
	}
}

func TestRegistryCompleteWithoutPending(t *testing.T) {
	registry := NewRegistry()
	registry.SetResolver(func(_ context.Context, succeeded bool) (bool, error) {
		return succeeded, nil
	})
	if _, err := registry.Complete(context.Background(), true); err != domainerrors.ErrNoSalePending {
		t.Fatalf("expected no sale pending, got %v", err)
	}
}
