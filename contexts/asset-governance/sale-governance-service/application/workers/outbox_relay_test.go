package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/adapters/memory"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

type capturingPublisher struct {
	published []string
	failTopic string
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, _ ports.EventEnvelope) error {
	if topic == p.failTopic {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, topic)
	return nil
}

func appendEnvelope(t *testing.T, store *memory.Store, eventID string, eventType string, at time.Time) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: at,
		Data:       []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}
}

func TestOutboxRelayPublishesPendingRows(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{}
	base := time.Now().UTC()
	appendEnvelope(t, store, "evt-1", "motion.created", base)
	appendEnvelope(t, store, "evt-2", "vote.cast", base.Add(time.Second))

	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 events published, got %d", len(publisher.published))
	}
	if publisher.published[0] != "motion.created" || publisher.published[1] != "vote.cast" {
		t.Fatalf("expected creation order preserved, got %v", publisher.published)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}
}

func TestOutboxRelayKeepsFailedRowsPending(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{failTopic: "vote.cast"}
	base := time.Now().UTC()
	appendEnvelope(t, store, "evt-1", "motion.created", base)
	appendEnvelope(t, store, "evt-2", "vote.cast", base.Add(time.Second))

	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "vote.cast" {
		t.Fatalf("expected the failed row to stay pending, got %+v", pending)
	}
}
