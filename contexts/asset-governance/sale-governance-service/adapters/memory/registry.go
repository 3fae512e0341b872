package memory

import (
	"context"
	"strings"
	"sync"

	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
)

// TransferRequest is one issued asset hand-off awaiting completion.
type TransferRequest struct {
	ReceiverID    string
	AssetID       string
	EscortPayment uint64
}

// Registry is the in-process asset registry stub. TransferAsset only records
// the request; tests drive the suspension window explicitly by calling
// Complete, which reports the outcome through the wired resolver exactly once
// per request.
type Registry struct {
	mu       sync.Mutex
	pending  []TransferRequest
	resolver func(ctx context.Context, succeeded bool) (bool, error)
}

func NewRegistry() *Registry {
	return &Registry{}
}

// SetResolver wires the completion callback. The module wiring points it at
// the privileged resolve path with the contract's own identity.
func (r *Registry) SetResolver(resolver func(ctx context.Context, succeeded bool) (bool, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolver = resolver
}

func (r *Registry) TransferAsset(_ context.Context, receiverID string, assetID string, escortPayment uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(receiverID) == "" || strings.TrimSpace(assetID) == "" {
		return domainerrors.ErrInvalidInput
	}
	r.pending = append(r.pending, TransferRequest{
		ReceiverID:    receiverID,
		AssetID:       assetID,
		EscortPayment: escortPayment,
	})
	return nil
}

// PendingRequests returns the hand-offs issued but not yet completed.
func (r *Registry) PendingRequests() []TransferRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TransferRequest(nil), r.pending...)
}

// Complete resolves the oldest pending hand-off with the given outcome.
func (r *Registry) Complete(ctx context.Context, succeeded bool) (bool, error) {
	r.mu.Lock()
	if len(r.pending) == 0 || r.resolver == nil {
		r.mu.Unlock()
		return false, domainerrors.ErrNoSalePending
	}
	r.pending = r.pending[1:]
	resolver := r.resolver
	r.mu.Unlock()

	return resolver(ctx, succeeded)
}
