package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"storefront/internal/models/db_models"
)

type OrderRepository interface {
	// CreateIfAbsent inserts the order unless one with the same id or gateway
	// session already exists. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, order *db_models.Order) (bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*db_models.Order, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Order, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateIfAbsent(ctx context.Context, order *db_models.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(order)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) FindBySessionID(ctx context.Context, sessionID string) (*db_models.Order, error) {
	var order db_models.Order
	err := r.db.WithContext(ctx).First(&order, "gateway_session_id = ?", sessionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Order, int64, error) {
	var (
		orders []db_models.Order
		total  int64
	)

	if err := r.db.WithContext(ctx).Model(&db_models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
