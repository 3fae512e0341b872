package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fungify/contexts/asset-governance/sale-governance-service/domain/entities"
	domainerrors "fungify/contexts/asset-governance/sale-governance-service/domain/errors"
	"fungify/contexts/asset-governance/sale-governance-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	// The settlement state is contract-global: one row, fixed key.
	settlementRowID = "contract"
)

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

func (r *Repository) CreateMotion(ctx context.Context, motion entities.Motion) error {
	row, err := motionModelFromEntity(motion)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateMotionID
		}
		return r.logError("governance_repo_create_motion_failed", create.Error,
			"motion_id", strings.TrimSpace(motion.MotionID),
		)
	}
	return nil
}

func (r *Repository) GetMotion(ctx context.Context, motionID string) (entities.Motion, error) {
	var row motionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(motionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Motion{}, domainerrors.ErrMotionNotFound
		}
		return entities.Motion{}, r.logError("governance_repo_get_motion_failed", err,
			"motion_id", strings.TrimSpace(motionID),
		)
	}
	return row.toEntity()
}

func (r *Repository) SaveMotion(ctx context.Context, motion entities.Motion) error {
	row, err := motionModelFromEntity(motion)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"votes":      row.Votes,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if result.Error != nil {
		return r.logError("governance_repo_save_motion_failed", result.Error,
			"motion_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) DeleteMotion(ctx context.Context, motionID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(motionID)).
		Delete(&motionModel{})
	if result.Error != nil {
		return r.logError("governance_repo_delete_motion_failed", result.Error,
			"motion_id", strings.TrimSpace(motionID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMotionNotFound
	}
	return nil
}

func (r *Repository) ListMotions(ctx context.Context) ([]entities.Motion, error) {
	var rows []motionModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("governance_repo_list_motions_failed", err)
	}
	items := make([]entities.Motion, 0, len(rows))
	for _, row := range rows {
		motion, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, motion)
	}
	return items, nil
}

func (r *Repository) GetState(ctx context.Context) (entities.SettlementState, error) {
	var row settlementModel
	err := r.db.WithContext(ctx).
		Where("id = ?", settlementRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.SettlementState{}, nil
		}
		return entities.SettlementState{}, r.logError("governance_repo_get_state_failed", err)
	}
	return entities.SettlementState{
		CashoutAmount:    row.CashoutAmount,
		SaleInProgressID: row.SaleInProgressID,
	}, nil
}

func (r *Repository) SaveState(ctx context.Context, state entities.SettlementState) error {
	row := settlementModel{
		ID:               settlementRowID,
		CashoutAmount:    state.CashoutAmount,
		SaleInProgressID: state.SaleInProgressID,
		UpdatedAt:        time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"cashout_amount":      row.CashoutAmount,
			"sale_in_progress_id": row.SaleInProgressID,
			"updated_at":          row.UpdatedAt,
		}),
	}).Create(&row)
	if result.Error != nil {
		return r.logError("governance_repo_save_state_failed", result.Error)
	}
	return nil
}

// Transfer persists the payout request; the payment rail drains this table.
func (r *Repository) Transfer(ctx context.Context, accountID string, amount uint64) error {
	row := payoutModel{
		ID:        uuid.NewString(),
		AccountID: strings.TrimSpace(accountID),
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if row.AccountID == "" {
		return domainerrors.ErrInvalidInput
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("governance_repo_record_payout_failed", err,
			"account_id", row.AccountID,
			"amount", amount,
		)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:           strings.TrimSpace(envelope.EventID),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	create := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&row)
	if create.Error != nil {
		return r.logError("governance_repo_append_outbox_failed", create.Error,
			"event_id", row.ID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("governance_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.ID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("governance_repo_mark_outbox_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMotionNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "asset-governance/sale-governance-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("governance repository operation failed", fields...)
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

type motionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Kind        string    `gorm:"column:kind"`
	ReceiverID  *string   `gorm:"column:receiver_id"`
	SalePrice   *uint64   `gorm:"column:sale_price"`
	InitiatorID *string   `gorm:"column:initiator_id"`
	Description *string   `gorm:"column:description"`
	Votes       []byte    `gorm:"column:votes"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (motionModel) TableName() string {
	return "motions"
}

func motionModelFromEntity(motion entities.Motion) (motionModel, error) {
	votes, err := json.Marshal(motion.Votes)
	if err != nil {
		return motionModel{}, err
	}
	row := motionModel{
		ID:        strings.TrimSpace(motion.MotionID),
		Kind:      string(motion.Kind),
		Votes:     votes,
		CreatedAt: motion.CreatedAt.UTC(),
		UpdatedAt: motion.UpdatedAt.UTC(),
	}
	switch motion.Kind {
	case entities.MotionKindSale:
		if motion.Sale == nil {
			return motionModel{}, domainerrors.ErrInvalidInput
		}
		receiver := motion.Sale.ReceiverID
		price := motion.Sale.SalePrice
		row.ReceiverID = &receiver
		row.SalePrice = &price
	case entities.MotionKindGeneric:
		if motion.Generic == nil {
			return motionModel{}, domainerrors.ErrInvalidInput
		}
		initiator := motion.Generic.InitiatorID
		description := motion.Generic.Description
		row.InitiatorID = &initiator
		row.Description = &description
	default:
		return motionModel{}, domainerrors.ErrInvalidInput
	}
	return row, nil
}

func (m motionModel) toEntity() (entities.Motion, error) {
	motion := entities.Motion{
		MotionID:  m.ID,
		Kind:      entities.MotionKind(m.Kind),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(m.Votes) > 0 {
		if err := json.Unmarshal(m.Votes, &motion.Votes); err != nil {
			return entities.Motion{}, err
		}
	}
	switch motion.Kind {
	case entities.MotionKindSale:
		if m.ReceiverID == nil || m.SalePrice == nil {
			return entities.Motion{}, domainerrors.ErrInvalidInput
		}
		motion.Sale = &entities.SaleDetails{
			ReceiverID: *m.ReceiverID,
			SalePrice:  *m.SalePrice,
		}
	case entities.MotionKindGeneric:
		if m.InitiatorID == nil || m.Description == nil {
			return entities.Motion{}, domainerrors.ErrInvalidInput
		}
		motion.Generic = &entities.GenericDetails{
			InitiatorID: *m.InitiatorID,
			Description: *m.Description,
		}
	default:
		return entities.Motion{}, domainerrors.ErrInvalidInput
	}
	return motion, nil
}

type settlementModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	CashoutAmount    *uint64   `gorm:"column:cashout_amount"`
	SaleInProgressID *string   `gorm:"column:sale_in_progress_id"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (settlementModel) TableName() string {
	return "settlement_state"
}

type outboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "governance_outbox"
}

type payoutModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	AccountID string    `gorm:"column:account_id"`
	Amount    uint64    `gorm:"column:amount"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (payoutModel) TableName() string {
	return "payouts"
}
