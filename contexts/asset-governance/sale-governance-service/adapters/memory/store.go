package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"

	"github.com/google/uuid"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Store struct {
	mu sync.RWMutex

	motions map[string]entities.Motion
	state   entities.SettlementState
	outbox  map[string]outboxRecord
	payouts map[string]uint64
}

type outboxRecord struct {
	Message ports.OutboxMessage
	Status  string
}

func NewStore() *Store {
	return &Store{
		motions: make(map[string]entities.Motion),
		outbox:  make(map[string]outboxRecord),
		payouts: make(map[string]uint64),
	}
}

func (s *Store) CreateMotion(_ context.Context, motion entities.Motion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(motion.MotionID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.motions[id]; exists {
		return domainerrors.ErrDuplicateMotionID
	}
	s.motions[id] = cloneMotion(motion)
	return nil
}

func (s *Store) GetMotion(_ context.Context, motionID string) (entities.Motion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	motion, ok := s.motions[strings.TrimSpace(motionID)]
	if !ok {
		return entities.Motion{}, domainerrors.ErrMotionNotFound
	}
	return cloneMotion(motion), nil
}

func (s *Store) SaveMotion(_ context.Context, motion entities.Motion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(motion.MotionID)
	if _, ok := s.motions[id]; !ok {
		return domainerrors.ErrMotionNotFound
	}
	s.motions[id] = cloneMotion(motion)
	return nil
}

func (s *Store) DeleteMotion(_ context.Context, motionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(motionID)
	if _, ok := s.motions[id]; !ok {
		return domainerrors.ErrMotionNotFound
	}
	delete(s.motions, id)
	return nil
}

func (s *Store) ListMotions(_ context.Context) ([]entities.Motion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Motion, 0, len(s.motions))
	for _, motion := range s.motions {
		items = append(items, cloneMotion(motion))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].MotionID < items[j].MotionID
	})
	return items, nil
}

func (s *Store) GetState(_ context.Context) (entities.SettlementState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state), nil
}

func (s *Store) SaveState(_ context.Context, state entities.SettlementState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cloneState(state)
	return nil
}

// Transfer records the payout. Cumulative totals per account stand in for the
// platform's native value transfer in tests.
func (s *Store) Transfer(_ context.Context, accountID string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(accountID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	s.payouts[id] += amount
	return nil
}

// PaidTo reports the cumulative amount transferred to an account.
func (s *Store) PaidTo(accountID string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payouts[strings.TrimSpace(accountID)]
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		return domainerrors.ErrInvalidInput
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.Message.Payload, payload) {
			return domainerrors.ErrInvalidInput
		}
		return nil
	}
	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status == outboxStatusPending {
			items = append(items, row.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrMotionNotFound
	}
	row.Status = outboxStatusPublished
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneMotion(motion entities.Motion) entities.Motion {
	cloned := motion
	if motion.Sale != nil {
		sale := *motion.Sale
		cloned.Sale = &sale
	}
	if motion.Generic != nil {
		generic := *motion.Generic
		cloned.Generic = &generic
	}
	cloned.Votes = entities.Votes{
		Accepting:   append([]string(nil), motion.Votes.Accepting...),
		Rejecting:   append([]string(nil), motion.Votes.Rejecting...),
		Indifferent: append([]string(nil), motion.Votes.Indifferent...),
	}
	return cloned
}

func cloneState(state entities.SettlementState) entities.SettlementState {
	cloned := entities.SettlementState{}
	if state.CashoutAmount != nil {
		amount := *state.CashoutAmount
		cloned.CashoutAmount = &amount
	}
	if state.SaleInProgressID != nil {
		id := *state.SaleInProgressID
		cloned.SaleInProgressID = &id
	}
	return cloned
}
