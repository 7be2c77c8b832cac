package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront/internal/models/db_models"
	pm "storefront/internal/models/payment_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

// PaymentGateway opens a hosted checkout session. Implementations resolve their
// own credentials and must fail with utils.ErrConfiguration before any network
// call when a credential is missing.
type PaymentGateway interface {
	CreateSession(ctx context.Context, spec *pm.GatewaySessionSpec) (*pm.CreatedSession, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, req pm.CheckoutRequest) (*response_models.CheckoutSessionResponse, error)
	SessionStatus(ctx context.Context, sessionID string) (*response_models.SessionStatusResponse, error)
}

type checkoutService struct {
	builder *SessionBuilder
	gateway PaymentGateway
	orders  repositories.OrderRepository
	finance repositories.FinanceRepository
	log     *zap.Logger
}

func NewCheckoutService(
	builder *SessionBuilder,
	gateway PaymentGateway,
	orders repositories.OrderRepository,
	finance repositories.FinanceRepository,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		builder: builder,
		gateway: gateway,
		orders:  orders,
		finance: finance,
		log:     log,
	}
}

func (s *checkoutService) CreateSession(ctx context.Context, req pm.CheckoutRequest) (*response_models.CheckoutSessionResponse, error) {
	spec, err := s.builder.Build(req)
	if err != nil {
		return nil, err
	}

	if req.Mode() == pm.CheckoutModeInvoice {
		if err := s.ensurePayable(ctx, req.Invoice.FinanceRecordID); err != nil {
			return nil, err
		}
	}

	created, err := s.gateway.CreateSession(ctx, spec)
	if err != nil {
		return nil, err
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", created.ID),
		zap.String("checkout", string(req.Mode())),
		zap.String("mode", string(spec.Mode)),
		zap.String("source", spec.Metadata[pm.MetadataSource]),
		zap.Int("line_items", len(spec.LineItems)))

	return &response_models.CheckoutSessionResponse{
		SessionID:  created.ID,
		SessionURL: created.URL,
	}, nil
}

// ensurePayable rejects invoice checkouts whose finance record the webhook could
// never reconcile: malformed ids, unknown records and records already paid.
func (s *checkoutService) ensurePayable(ctx context.Context, financeRecordID string) error {
	id, err := uuid.Parse(financeRecordID)
	if err != nil {
		return utils.Validationf("financeRecordId must be a UUID")
	}

	record, err := s.finance.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: find finance record: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return fmt.Errorf("%w: finance record %s", utils.ErrRecordNotFound, id)
	}
	if record.Status == db_models.FinanceStatusPaid {
		return fmt.Errorf("%w: finance record %s is already paid", utils.ErrInvalidTransition, id)
	}
	return nil
}

// SessionStatus reports whether the webhook has already reconciled a session.
// It only reads.
func (s *checkoutService) SessionStatus(ctx context.Context, sessionID string) (*response_models.SessionStatusResponse, error) {
	if sessionID == "" {
		return nil, utils.Validationf("session id is required")
	}

	resp := &response_models.SessionStatusResponse{SessionID: sessionID}

	order, err := s.orders.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: find order: %v", utils.ErrDatabaseError, err)
	}
	if order != nil {
		resp.Reconciled = true
		resp.OrderID = order.ID.String()
		resp.Status = string(order.Status)
		return resp, nil
	}

	record, err := s.finance.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: find finance record: %v", utils.ErrDatabaseError, err)
	}
	if record != nil {
		resp.Reconciled = true
		resp.Status = string(record.Status)
	}

	return resp, nil
}
