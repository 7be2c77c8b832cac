package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"storefront/internal/models/db_models"
)

type FinanceRepository interface {
	Create(ctx context.Context, record *db_models.FinanceRecord) error
	CreateIfAbsent(ctx context.Context, record *db_models.FinanceRecord) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.FinanceRecord, error)
	FindBySessionID(ctx context.Context, sessionID string) (*db_models.FinanceRecord, error)

	// MarkPaymentSubmitted moves a record to "Pagamento Enviado" unless it is already paid.
	MarkPaymentSubmitted(ctx context.Context, id uuid.UUID, sessionID string) (bool, error)
	// ConfirmPaid moves a record from "Pagamento Enviado" to "Pago".
	ConfirmPaid(ctx context.Context, id uuid.UUID, paidAt int64) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.FinanceRecord, int64, error)
}

type financeRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(ctx context.Context, record *db_models.FinanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *financeRepository) CreateIfAbsent(ctx context.Context, record *db_models.FinanceRecord) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *financeRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.FinanceRecord, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *financeRepository) FindBySessionID(ctx context.Context, sessionID string) (*db_models.FinanceRecord, error) {
	return r.findOne(ctx, "gateway_session_id = ?", sessionID)
}

func (r *financeRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.FinanceRecord, error) {
	var record db_models.FinanceRecord
	err := r.db.WithContext(ctx).Where(query, args...).First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

func (r *financeRepository) MarkPaymentSubmitted(ctx context.Context, id uuid.UUID, sessionID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.FinanceRecord{}).
		Where("id = ? AND status <> ?", id, db_models.FinanceStatusPaid).
		Updates(map[string]interface{}{
			"status":             db_models.FinanceStatusPaymentSubmitted,
			"gateway_session_id": sessionID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *financeRepository) ConfirmPaid(ctx context.Context, id uuid.UUID, paidAt int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.FinanceRecord{}).
		Where("id = ? AND status = ?", id, db_models.FinanceStatusPaymentSubmitted).
		Updates(map[string]interface{}{
			"status":  db_models.FinanceStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *financeRepository) List(ctx context.Context, page, pageSize int) ([]db_models.FinanceRecord, int64, error) {
	var (
		records []db_models.FinanceRecord
		total   int64
	)

	if err := r.db.WithContext(ctx).Model(&db_models.FinanceRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
