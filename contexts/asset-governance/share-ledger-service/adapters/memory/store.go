package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "fungify/contexts/asset-governance/share-ledger-service/domain/errors"
	"fungify/contexts/asset-governance/share-ledger-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	balances map[string]uint64
	outbox   map[string]outboxRecord
}

type outboxRecord struct {
	Envelope  ports.EventEnvelope
	Payload   []byte
	Status    string
	CreatedAt time.Time
}

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

func NewStore() *Store {
	return &Store{
		balances: make(map[string]uint64),
		outbox:   make(map[string]outboxRecord),
	}
}

func (s *Store) CreateAccount(_ context.Context, accountID string, balance uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(accountID)
	if id == "" {
		return false, domainerrors.ErrInvalidInput
	}
	if _, exists := s.balances[id]; exists {
		return false, nil
	}
	s.balances[id] = balance
	return true, nil
}

func (s *Store) GetBalance(_ context.Context, accountID string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[strings.TrimSpace(accountID)]
	return balance, ok, nil
}

func (s *Store) UpdateBalances(_ context.Context, updates []ports.BalanceUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, update := range updates {
		if _, ok := s.balances[update.AccountID]; !ok {
			return domainerrors.ErrNotRegistered
		}
	}
	for _, update := range updates {
		s.balances[update.AccountID] = update.Balance
	}
	return nil
}

func (s *Store) ZeroBalance(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(accountID)
	if _, ok := s.balances[id]; !ok {
		return domainerrors.ErrNotRegistered
	}
	s.balances[id] = 0
	return nil
}

func (s *Store) ListHoldings(_ context.Context) ([]ports.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Holding, 0, len(s.balances))
	for accountID, balance := range s.balances {
		items = append(items, ports.Holding{AccountID: accountID, Balance: balance})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AccountID < items[j].AccountID
	})
	return items, nil
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
		if !bytes.Equal(existing.Payload, payload) {
			return domainerrors.ErrInvalidInput
		}
		return nil
	}
	s.outbox[outboxID] = outboxRecord{
		Envelope:  envelope,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt.UTC(),
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
