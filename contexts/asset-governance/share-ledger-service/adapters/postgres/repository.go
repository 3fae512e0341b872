package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "fungify/contexts/asset-governance/share-ledger-service/domain/errors"
	"fungify/contexts/asset-governance/share-ledger-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const outboxStatusPending = "pending"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateAccount(ctx context.Context, accountID string, balance uint64) (bool, error) {
	row := ledgerModel{
		AccountID: strings.TrimSpace(accountID),
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if row.AccountID == "" {
		return false, domainerrors.ErrInvalidInput
	}
	create := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return false, nil
		}
		return false, r.logError("ledger_repo_create_account_failed", create.Error,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return create.RowsAffected > 0, nil
}

func (r *Repository) GetBalance(ctx context.Context, accountID string) (uint64, bool, error) {
	var row ledgerModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, r.logError("ledger_repo_get_balance_failed", err,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return row.Balance, true, nil
}

func (r *Repository) UpdateBalances(ctx context.Context, updates []ports.BalanceUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&ledgerModel{}).
				Where("account_id = ?", update.AccountID).
				Updates(map[string]any{
					"balance":    update.Balance,
					"updated_at": time.Now().UTC(),
				})
			if result.Error != nil {
				return r.logError("ledger_repo_update_balance_failed", result.Error,
					"account_id", update.AccountID,
				)
			}
			if result.RowsAffected == 0 {
				return domainerrors.ErrNotRegistered
			}
		}
		return nil
	})
}

func (r *Repository) ZeroBalance(ctx context.Context, accountID string) error {
	return r.UpdateBalances(ctx, []ports.BalanceUpdate{
		{AccountID: strings.TrimSpace(accountID), Balance: 0},
	})
}

func (r *Repository) ListHoldings(ctx context.Context) ([]ports.Holding, error) {
	var rows []ledgerModel
	if err := r.db.WithContext(ctx).
		Order("account_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_holdings_failed", err)
	}
	items := make([]ports.Holding, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.Holding{AccountID: row.AccountID, Balance: row.Balance})
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:        strings.TrimSpace(envelope.EventID),
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt.UTC(),
	}
	create := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&row)
	if create.Error != nil {
		return r.logError("ledger_repo_append_outbox_failed", create.Error,
			"event_id", row.ID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "asset-governance/share-ledger-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type ledgerModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Balance   uint64    `gorm:"column:balance"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ledgerModel) TableName() string {
	return "share_ledger"
}

type outboxModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	EventType string    `gorm:"column:event_type"`
	Payload   []byte    `gorm:"column:payload"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string {
	return "ledger_outbox"
}
