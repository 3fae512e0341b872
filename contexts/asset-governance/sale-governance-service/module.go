package salegovernance

import (
	"context"
	"log/slog"

	httpadapter "fungify/contexts/asset-governance/sale-governance-service/adapters/http"
	"fungify/contexts/asset-governance/sale-governance-service/adapters/memory"
	"fungify/contexts/asset-governance/sale-governance-service/application/commands"
	"fungify/contexts/asset-governance/sale-governance-service/application/queries"
	"fungify/contexts/asset-governance/sale-governance-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Governance commands.GovernanceUseCase
	Queries    queries.StatusQueries
	Store      *memory.Store
	Registry   *memory.Registry
}

// Config carries the contract parameters fixed at deployment.
type Config struct {
	SelfID                 string
	AssetID                string
	TotalSupply            uint64
	ParticipationThreshold uint64
	AcceptanceThreshold    uint64
	MotionFee              uint64
	EscortPayment          uint64
}

type Dependencies struct {
	Motions    ports.MotionRepository
	Settlement ports.SettlementStateStore
	Ledger     ports.ShareLedger
	Registry   ports.AssetRegistry
	Payouts    ports.ValueTransfer
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Config     Config
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	governance := commands.GovernanceUseCase{
		Motions:                deps.Motions,
		Settlement:             deps.Settlement,
		Ledger:                 deps.Ledger,
		Registry:               deps.Registry,
		Payouts:                deps.Payouts,
		Outbox:                 deps.Outbox,
		Clock:                  deps.Clock,
		IDGen:                  deps.IDGen,
		SelfID:                 deps.Config.SelfID,
		AssetID:                deps.Config.AssetID,
		TotalSupply:            deps.Config.TotalSupply,
		ParticipationThreshold: deps.Config.ParticipationThreshold,
		AcceptanceThreshold:    deps.Config.AcceptanceThreshold,
		MotionFee:              deps.Config.MotionFee,
		EscortPayment:          deps.Config.EscortPayment,
		Logger:                 deps.Logger,
	}
	statusQueries := queries.StatusQueries{
		Motions:    deps.Motions,
		Settlement: deps.Settlement,
		Ledger:     deps.Ledger,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Governance: governance,
			Queries:    statusQueries,
			Logger:     deps.Logger,
		},
		Governance: governance,
		Queries:    statusQueries,
	}
}

// NewInMemoryModule wires the module against in-process adapters. The stub
// registry's completion path is pointed at the privileged resolve entry with
// the contract's own identity, so tests drive the hand-off window by calling
// Registry.Complete.
func NewInMemoryModule(cfg Config, ledger ports.ShareLedger, logger *slog.Logger) Module {
	store := memory.NewStore()
	registry := memory.NewRegistry()
	module := NewModule(Dependencies{
		Motions:    store,
		Settlement: store,
		Ledger:     ledger,
		Registry:   registry,
		Payouts:    store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Config:     cfg,
		Logger:     logger,
	})
	registry.SetResolver(module.ResolveWithSelf())
	module.Store = store
	module.Registry = registry
	return module
}

// ResolveWithSelf binds the resolve entry point to the contract's own
// identity, the only caller allowed to report hand-off outcomes.
func (m Module) ResolveWithSelf() func(ctx context.Context, succeeded bool) (bool, error) {
	return func(ctx context.Context, succeeded bool) (bool, error) {
		return m.Governance.ResolveSale(ctx, m.Governance.SelfID, succeeded)
	}
}
