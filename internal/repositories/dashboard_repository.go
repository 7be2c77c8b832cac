package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbm "storefront/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountOrdersByStatus(ctx context.Context) ([]StatusCount, error)
	FinanceTotalsByStatus(ctx context.Context) ([]StatusTotal, error)

	// Raw points for the revenue series; bucketing happens in the service
	OrderAmountsBetween(ctx context.Context, start, end time.Time) ([]AmountAt, error)
	PaidFinanceBetween(ctx context.Context, start, end time.Time) ([]AmountAt, error)

	RecentOrders(ctx context.Context, limit int) ([]dbm.Order, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type StatusTotal struct {
	Status string          `gorm:"column:status"`
	Count  int64           `gorm:"column:count"`
	Total  decimal.Decimal `gorm:"column:total"`
}

type AmountAt struct {
	At     int64           `gorm:"column:at"`
	Amount decimal.Decimal `gorm:"column:amount"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountOrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) FinanceTotalsByStatus(ctx context.Context) ([]StatusTotal, error) {
	var rows []StatusTotal
	err := r.db.WithContext(ctx).
		Model(&dbm.FinanceRecord{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// ---------- Series ----------

// OrderAmountsBetween lists order totals by creation time. Orders only exist
// once the gateway reported the session paid.
func (r *dashboardRepository) OrderAmountsBetween(ctx context.Context, start, end time.Time) ([]AmountAt, error) {
	var rows []AmountAt
	err := r.db.WithContext(ctx).
		Model(&dbm.Order{}).
		Select("created_at AS at, amount_total AS amount").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Order("created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) PaidFinanceBetween(ctx context.Context, start, end time.Time) ([]AmountAt, error) {
	var rows []AmountAt
	err := r.db.WithContext(ctx).
		Model(&dbm.FinanceRecord{}).
		Select("paid_at AS at, total_amount AS amount").
		Where("status = ?", dbm.FinanceStatusPaid).
		Where("paid_at IS NOT NULL").
		Where("paid_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Order("paid_at ASC").
		Scan(&rows).Error
	return rows, err
}

// ---------- Recent ----------
func (r *dashboardRepository) RecentOrders(ctx context.Context, limit int) ([]dbm.Order, error) {
	var orders []dbm.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
