package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

const maxPageSize = 100

// FinanceService backs the admin views over orders and finance records.
type FinanceService interface {
	ListOrders(ctx context.Context, page, pageSize int) (*response_models.PageResponse[response_models.OrderResponse], error)
	ListFinance(ctx context.Context, page, pageSize int) (*response_models.PageResponse[response_models.FinanceRecordResponse], error)
	CreateManualRecord(ctx context.Context, req request_models.CreateFinanceRecordRequest) (*response_models.FinanceRecordResponse, error)
	ConfirmPaid(ctx context.Context, id string) (*response_models.FinanceRecordResponse, error)
}

type financeService struct {
	orders   repositories.OrderRepository
	finance  repositories.FinanceRepository
	currency string
	log      *zap.Logger
	now      func() time.Time
}

func NewFinanceService(
	orders repositories.OrderRepository,
	finance repositories.FinanceRepository,
	cfg config.Config,
	log *zap.Logger,
) FinanceService {
	return &financeService{
		orders:   orders,
		finance:  finance,
		currency: cfg.Currency,
		log:      log,
		now:      time.Now,
	}
}

func validatePage(page, pageSize int) error {
	if page < 1 {
		return utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return utils.ErrInvalidPageSize
	}
	return nil
}

func (s *financeService) ListOrders(ctx context.Context, page, pageSize int) (*response_models.PageResponse[response_models.OrderResponse], error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}

	orders, total, err := s.orders.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	return &response_models.PageResponse[response_models.OrderResponse]{
		Items: items, Page: page, PageSize: pageSize, Total: total,
	}, nil
}

func (s *financeService) ListFinance(ctx context.Context, page, pageSize int) (*response_models.PageResponse[response_models.FinanceRecordResponse], error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}

	records, total, err := s.finance.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list finance records: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.FinanceRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, toFinanceResponse(&records[i]))
	}
	return &response_models.PageResponse[response_models.FinanceRecordResponse]{
		Items: items, Page: page, PageSize: pageSize, Total: total,
	}, nil
}

func (s *financeService) CreateManualRecord(ctx context.Context, req request_models.CreateFinanceRecordRequest) (*response_models.FinanceRecordResponse, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, utils.Validationf("total amount must be positive")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.Validationf("title is required")
	}

	record := &db_models.FinanceRecord{
		ClientName:  strings.TrimSpace(req.ClientName),
		Title:       title,
		TotalAmount: req.TotalAmount.Round(2),
		Currency:    s.currency,
		Status:      db_models.FinanceStatusPending,
		EntryType:   db_models.EntryTypeManual,
	}
	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, utils.Validationf("client id is not a valid uuid")
		}
		record.ClientID = &clientID
	}

	if err := s.finance.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: create finance record: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("Manual finance record created",
		zap.String("finance_record_id", record.ID.String()),
		zap.String("total_amount", record.TotalAmount.StringFixed(2)))

	resp := toFinanceResponse(record)
	return &resp, nil
}

// ConfirmPaid is the manual "Pagamento Enviado" to "Pago" step; webhooks never take it.
func (s *financeService) ConfirmPaid(ctx context.Context, id string) (*response_models.FinanceRecordResponse, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.Validationf("finance record id is not a valid uuid")
	}

	record, err := s.finance.FindByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: find finance record: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return nil, utils.ErrRecordNotFound
	}
	if record.Status == db_models.FinanceStatusPaid {
		resp := toFinanceResponse(record)
		return &resp, nil
	}
	if record.Status != db_models.FinanceStatusPaymentSubmitted {
		return nil, fmt.Errorf("%w: record is %q", utils.ErrInvalidTransition, record.Status)
	}

	paidAt := s.now().Unix()
	updated, err := s.finance.ConfirmPaid(ctx, recordID, paidAt)
	if err != nil {
		return nil, fmt.Errorf("%w: confirm finance record: %v", utils.ErrDatabaseError, err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: record changed concurrently", utils.ErrInvalidTransition)
	}

	record.Status = db_models.FinanceStatusPaid
	record.PaidAt = &paidAt
	s.log.Info("Finance record confirmed as paid", zap.String("finance_record_id", id))

	resp := toFinanceResponse(record)
	return &resp, nil
}

func toOrderResponse(o *db_models.Order) response_models.OrderResponse {
	products := make([]response_models.OrderProduct, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, response_models.OrderProduct{ID: p.ID, Name: p.Name, IsSubscription: p.IsSubscription})
	}
	return response_models.OrderResponse{
		ID:               o.ID.String(),
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		AmountTotal:      o.AmountTotal.StringFixed(2),
		Currency:         o.Currency,
		Status:           string(o.Status),
		Products:         products,
		GatewaySessionID: o.GatewaySessionID,
		CreatedAt:        o.CreatedAt,
	}
}

func toFinanceResponse(r *db_models.FinanceRecord) response_models.FinanceRecordResponse {
	resp := response_models.FinanceRecordResponse{
		ID:               r.ID.String(),
		ClientName:       r.ClientName,
		Title:            r.Title,
		TotalAmount:      r.TotalAmount.StringFixed(2),
		Currency:         r.Currency,
		Status:           string(r.Status),
		EntryType:        string(r.EntryType),
		GatewaySessionID: r.GatewaySessionID,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
	}
	if r.ClientID != nil {
		id := r.ClientID.String()
		resp.ClientID = &id
	}
	return resp
}
