package services

import (
	"context"
	"fmt"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"storefront/internal/config"
	dbm "storefront/internal/models/db_models"
	resp "storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

const recentOrdersLimit = 10

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo     repositories.DashboardRepository
	currency string
	now      func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, cfg config.Config) DashboardService {
	return &dashboardService{repo: repo, currency: cfg.Currency, now: time.Now}
}

// normalizeRange ensures sane defaults and ordering
func (s *dashboardService) normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = s.now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = s.normalizeRange(rng)

	loc := time.UTC
	if rng.Timezone != "" {
		l, err := time.LoadLocation(rng.Timezone)
		if err != nil {
			return nil, utils.Validationf("unknown timezone %q", rng.Timezone)
		}
		loc = l
	}
	if !validInterval(rng.Interval) {
		return nil, utils.Validationf("interval must be one of: day, week, month")
	}

	// ---------- Counts ----------
	orderRows, err := s.repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count orders: %v", utils.ErrDatabaseError, err)
	}
	var totalOrders int64
	ordersByStatus := make([]resp.StatusCount, 0, len(orderRows))
	for _, r := range orderRows {
		totalOrders += r.Count
		ordersByStatus = append(ordersByStatus, resp.StatusCount{Status: r.Status, Count: r.Count})
	}

	financeRows, err := s.repo.FinanceTotalsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: finance totals: %v", utils.ErrDatabaseError, err)
	}
	outstanding, paid := decimal.Zero, decimal.Zero
	financeByStatus := make([]resp.StatusTotal, 0, len(financeRows))
	for _, r := range financeRows {
		switch dbm.FinanceStatus(r.Status) {
		case dbm.FinanceStatusPending, dbm.FinanceStatusPaymentSubmitted:
			outstanding = outstanding.Add(r.Total)
		case dbm.FinanceStatusPaid:
			paid = paid.Add(r.Total)
		}
		financeByStatus = append(financeByStatus, resp.StatusTotal{
			Status: r.Status,
			Count:  r.Count,
			Total:  r.Total.StringFixed(2),
		})
	}

	// ---------- Series ----------
	storeRows, err := s.repo.OrderAmountsBetween(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("%w: order series: %v", utils.ErrDatabaseError, err)
	}
	financeSeriesRows, err := s.repo.PaidFinanceBetween(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("%w: finance series: %v", utils.ErrDatabaseError, err)
	}

	// ---------- Recent ----------
	recent, err := s.repo.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent orders: %v", utils.ErrDatabaseError, err)
	}
	recentOrders := make([]resp.OrderResponse, 0, len(recent))
	for i := range recent {
		recentOrders = append(recentOrders, toOrderResponse(&recent[i]))
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalOrders:      totalOrders,
			OrdersByStatus:   ordersByStatus,
			FinanceByStatus:  financeByStatus,
			OutstandingTotal: outstanding.StringFixed(2),
			PaidTotal:        paid.StringFixed(2),
		},
		StoreRevenue:   s.series(storeRows, rng.Interval, loc),
		FinanceRevenue: s.series(financeSeriesRows, rng.Interval, loc),
		RecentOrders:   recentOrders,
	}, nil
}

func (s *dashboardService) series(rows []repositories.AmountAt, interval string, loc *time.Location) resp.RevenueSeries {
	sums := map[time.Time]decimal.Decimal{}
	total := decimal.Zero
	for _, r := range rows {
		b := bucketStart(time.Unix(r.At, 0), interval, loc)
		sums[b] = sums[b].Add(r.Amount)
		total = total.Add(r.Amount)
	}

	buckets := make([]time.Time, 0, len(sums))
	for b := range sums {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	points := make([]resp.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, resp.SeriesPoint{Bucket: b, Value: sums[b].StringFixed(2)})
	}
	return resp.RevenueSeries{Currency: s.currency, Points: points, Total: total.StringFixed(2)}
}

// bucketStart truncates t to the start of its day, ISO week (Monday) or month in loc.
func bucketStart(t time.Time, interval string, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	switch interval {
	case "week":
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return day
	}
}

func validInterval(s string) bool {
	switch s {
	case "day", "week", "month":
		return true
	default:
		return false
	}
}
