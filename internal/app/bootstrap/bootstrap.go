package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	salegovernance "fungify/contexts/asset-governance/sale-governance-service"
	governancepostgres "fungify/contexts/asset-governance/sale-governance-service/adapters/postgres"
	registryadapter "fungify/contexts/asset-governance/sale-governance-service/adapters/registry"
	"fungify/contexts/asset-governance/sale-governance-service/application/commands"
	"fungify/contexts/asset-governance/sale-governance-service/application/workers"
	shareledger "fungify/contexts/asset-governance/share-ledger-service"
	ledgerpostgres "fungify/contexts/asset-governance/share-ledger-service/adapters/postgres"
	"fungify/internal/platform/config"
	"fungify/internal/platform/db"
	"fungify/internal/platform/httpserver"
	"fungify/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workers.OutboxRelay
	settlement   workers.SettlementConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := shareledger.NewModule(shareledger.Dependencies{
		Ledger:          ledgerRepo,
		Outbox:          ledgerRepo,
		Clock:           ledgerpostgres.SystemClock{},
		IDGenerator:     ledgerpostgres.UUIDGenerator{},
		TotalSupply:     cfg.TotalSupply,
		RegistrationFee: cfg.RegistrationFee,
		DeployerID:      cfg.DeployerID,
		Logger:          logger,
	})
	if err := ledgerModule.Service.SeedInitialAllocation(context.Background()); err != nil {
		return nil, err
	}

	governanceRepo := governancepostgres.NewRepository(pg.DB, logger)
	governanceModule := salegovernance.NewModule(salegovernance.Dependencies{
		Motions:    governanceRepo,
		Settlement: governanceRepo,
		Ledger:     ledgerRepo,
		Registry: registryadapter.Client{
			Publisher:  kafka,
			RegistryID: cfg.AssetRegistryID,
			Logger:     logger,
		},
		Payouts: governanceRepo,
		Outbox:  governanceRepo,
		Clock:   governancepostgres.SystemClock{},
		IDGen:   governancepostgres.UUIDGenerator{},
		Config: salegovernance.Config{
			SelfID:                 cfg.ContractID,
			AssetID:                cfg.AssetID,
			TotalSupply:            cfg.TotalSupply,
			ParticipationThreshold: cfg.ParticipationThreshold,
			AcceptanceThreshold:    cfg.AcceptanceThreshold,
			MotionFee:              cfg.MotionFee,
			EscortPayment:          cfg.EscortPayment,
		},
		Logger: logger,
	})

	server := httpserver.New(ledgerModule, governanceModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	governanceRepo := governancepostgres.NewRepository(pg.DB, logger)
	governance := commands.GovernanceUseCase{
		Motions:    governanceRepo,
		Settlement: governanceRepo,
		Ledger:     ledgerRepo,
		Registry: registryadapter.Client{
			Publisher:  kafka,
			RegistryID: cfg.AssetRegistryID,
			Logger:     logger,
		},
		Payouts:                governanceRepo,
		Outbox:                 governanceRepo,
		Clock:                  governancepostgres.SystemClock{},
		IDGen:                  governancepostgres.UUIDGenerator{},
		SelfID:                 cfg.ContractID,
		AssetID:                cfg.AssetID,
		TotalSupply:            cfg.TotalSupply,
		ParticipationThreshold: cfg.ParticipationThreshold,
		AcceptanceThreshold:    cfg.AcceptanceThreshold,
		MotionFee:              cfg.MotionFee,
		EscortPayment:          cfg.EscortPayment,
		Logger:                 logger,
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: workers.OutboxRelay{
			Outbox:    governanceRepo,
			Publisher: kafka,
			Clock:     governancepostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		settlement: workers.SettlementConsumer{
			Subscriber:    kafka,
			Governance:    governance,
			SelfID:        cfg.ContractID,
			AssetID:       cfg.AssetID,
			ConsumerGroup: "sale-governance-settlement-cg",
			Logger:        logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.settlement.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
