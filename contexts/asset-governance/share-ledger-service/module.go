package shareledger

import (
	"context"
	"log/slog"

	httpadapter "fungify/contexts/asset-governance/share-ledger-service/adapters/http"
	"fungify/contexts/asset-governance/share-ledger-service/adapters/memory"
	"fungify/contexts/asset-governance/share-ledger-service/application"
	"fungify/contexts/asset-governance/share-ledger-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Ledger          ports.LedgerRepository
	Outbox          ports.OutboxWriter
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	TotalSupply     uint64
	RegistrationFee uint64
	DeployerID      string
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Ledger:          deps.Ledger,
		Outbox:          deps.Outbox,
		Clock:           deps.Clock,
		IDGen:           deps.IDGenerator,
		TotalSupply:     deps.TotalSupply,
		RegistrationFee: deps.RegistrationFee,
		DeployerID:      deps.DeployerID,
		Logger:          deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(totalSupply uint64, deployerID string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:          store,
		Outbox:          store,
		Clock:           store,
		IDGenerator:     store,
		TotalSupply:     totalSupply,
		RegistrationFee: 1000,
		DeployerID:      deployerID,
		Logger:          logger,
	})
	module.Store = store
	_ = module.Service.SeedInitialAllocation(context.Background())
	return module
}
