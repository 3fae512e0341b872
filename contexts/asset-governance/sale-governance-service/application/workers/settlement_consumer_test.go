package workers

import (
	"context"
	"encoding/json"
	"testing"

	"fungify/contexts/asset-governance/sale-governance-service/adapters/memory"
	"fungify/contexts/asset-governance/sale-governance-service/application/commands"
	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
	ledgermemory "fungify/contexts/asset-governance/share-ledger-service/adapters/memory"
)

func newConsumerFixture(t *testing.T) (SettlementConsumer, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	registry := memory.NewRegistry()
	ledger := ledgermemory.NewStore()
	if _, err := ledger.CreateAccount(context.Background(), "alice", 600); err != nil {
		t.Fatalf("seed ledger failed: %v", err)
	}

	governance := commands.GovernanceUseCase{
		Motions:                store,
		Settlement:             store,
		Ledger:                 ledger,
		Registry:               registry,
		Payouts:                store,
		Outbox:                 store,
		Clock:                  store,
		IDGen:                  store,
		SelfID:                 "fungify",
		AssetID:                "vessel-1",
		TotalSupply:            1000,
		ParticipationThreshold: 500,
		AcceptanceThreshold:    500,
		MotionFee:              10,
		EscortPayment:          1,
	}

	// A pending settlement awaiting the hand-off outcome.
	if err := governance.CreateSaleMotion(context.Background(), "alice", "m-1", 100, 10); err != nil {
		t.Fatalf("create motion failed: %v", err)
	}
	if err := governance.CastVote(context.Background(), "alice", "m-1", entities.VoteChoiceAccept); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := governance.FinalizeSaleMotion(context.Background(), "alice", "m-1", 101); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	return SettlementConsumer{
		Governance:    governance,
		SelfID:        "fungify",
		AssetID:       "vessel-1",
		ConsumerGroup: "settlement-test-cg",
	}, store
}

func completionEnvelope(t *testing.T, assetID string, succeeded bool) ports.EventEnvelope {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"asset_id":    assetID,
		"receiver_id": "alice",
		"succeeded":   succeeded,
	})
	if err != nil {
		t.Fatalf("marshal event failed: %v", err)
	}
	return ports.EventEnvelope{
		EventID:   "evt-1",
		EventType: TopicAssetTransferCompleted,
		Data:      payload,
	}
}

func TestConsumerSettlesOnSuccessfulHandoff(t *testing.T) {
	consumer, store := newConsumerFixture(t)

	if err := consumer.handle(context.Background(), completionEnvelope(t, "vessel-1", true)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	state, err := store.GetState(context.Background())
	if err != nil {
		t.Fatalf("state lookup failed: %v", err)
	}
	if !state.Sold() || state.SaleInProgress() {
		t.Fatalf("expected settled state, got %+v", state)
	}
}

func TestConsumerRevertsOnFailedHandoff(t *testing.T) {
	consumer, store := newConsumerFixture(t)

	if err := consumer.handle(context.Background(), completionEnvelope(t, "vessel-1", false)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	state, err := store.GetState(context.Background())
	if err != nil {
		t.Fatalf("state lookup failed: %v", err)
	}
	if state.Sold() || state.SaleInProgress() {
		t.Fatalf("expected reverted state, got %+v", state)
	}
	if paid := store.PaidTo("alice"); paid != 101 {
		t.Fatalf("expected captured payment refunded, got %d", paid)
	}
}

func TestConsumerIgnoresOtherAssets(t *testing.T) {
	consumer, store := newConsumerFixture(t)

	if err := consumer.handle(context.Background(), completionEnvelope(t, "vessel-2", true)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	state, err := store.GetState(context.Background())
	if err != nil {
		t.Fatalf("state lookup failed: %v", err)
	}
	if !state.SaleInProgress() {
		t.Fatal("completion for another asset must leave the pending sale untouched")
	}
}

func TestConsumerRejectsMalformedPayload(t *testing.T) {
	consumer, _ := newConsumerFixture(t)

	err := consumer.handle(context.Background(), ports.EventEnvelope{
		EventID:   "evt-bad",
		EventType: TopicAssetTransferCompleted,
		Data:      []byte("{not json"),
	})
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
