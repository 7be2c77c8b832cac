package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"storefront/internal/models/db_models"
	pm "storefront/internal/models/payment_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

var (
	orderNamespace   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront/orders"))
	financeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront/finance"))
)

// OrderIDForSession derives the order primary key from the gateway session id,
// so every delivery of the same event targets the same row.
func OrderIDForSession(sessionID string) uuid.UUID {
	return uuid.NewSHA1(orderNamespace, []byte(sessionID))
}

func FinanceIDForInvoice(invoiceID string) uuid.UUID {
	return uuid.NewSHA1(financeNamespace, []byte(invoiceID))
}

// ReconciliationService applies verified gateway events to persisted records.
// Every method is safe to run more than once for the same event.
type ReconciliationService interface {
	CreateOrder(ctx context.Context, session pm.GatewaySession) error
	MarkInvoiceSubmitted(ctx context.Context, financeRecordID string, session pm.GatewaySession) error
	RecordSubscriptionPayment(ctx context.Context, invoice pm.GatewayInvoice) error
}

type reconciliationService struct {
	orders   repositories.OrderRepository
	finance  repositories.FinanceRepository
	users    repositories.UserRepository
	notifier PaymentNotifier
	log      *zap.Logger
	now      func() time.Time
}

func NewReconciliationService(
	orders repositories.OrderRepository,
	finance repositories.FinanceRepository,
	users repositories.UserRepository,
	notifier PaymentNotifier,
	log *zap.Logger,
) ReconciliationService {
	return &reconciliationService{
		orders:   orders,
		finance:  finance,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (r *reconciliationService) CreateOrder(ctx context.Context, session pm.GatewaySession) error {
	log := r.log.With(zap.String("session_id", session.ID))

	email := strings.TrimSpace(session.Email())
	if email == "" {
		return fmt.Errorf("%w: %s", utils.ErrMissingCustomerEmail, session.ID)
	}

	products, err := decodeManifest(session.Metadata[pm.MetadataProducts])
	if err != nil {
		log.Warn("Unreadable product manifest in session metadata", zap.Error(err))
	}

	order := &db_models.Order{
		BaseModel:        db_models.BaseModel{ID: OrderIDForSession(session.ID)},
		CustomerName:     session.Name(),
		CustomerEmail:    email,
		ShippingDetails:  shippingJSON(session.ShippingDetails),
		AmountTotal:      pm.FromMinorUnits(session.AmountTotal),
		Currency:         session.Currency,
		Status:           db_models.OrderStatusPending,
		Products:         products,
		GatewaySessionID: session.ID,
	}

	created, err := r.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return fmt.Errorf("%w: create order: %v", utils.ErrDatabaseError, err)
	}
	if !created {
		log.Info("Order already exists for session, skipping")
		return nil
	}

	log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("amount_total", order.AmountTotal.StringFixed(2)))

	if err := r.notifier.OrderConfirmed(ctx, order); err != nil {
		log.Warn("Order confirmation email failed", zap.Error(err))
	}
	return nil
}

func (r *reconciliationService) MarkInvoiceSubmitted(ctx context.Context, financeRecordID string, session pm.GatewaySession) error {
	log := r.log.With(
		zap.String("session_id", session.ID),
		zap.String("finance_record_id", financeRecordID))

	id, err := uuid.Parse(financeRecordID)
	if err != nil {
		log.Warn("Finance record id in session metadata is not a uuid")
		return nil
	}

	record, err := r.finance.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: find finance record: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		log.Warn("Finance record not found for paid session")
		return nil
	}
	if record.Status == db_models.FinanceStatusPaid {
		log.Info("Finance record already paid, leaving as is")
		return nil
	}

	if _, err := r.finance.MarkPaymentSubmitted(ctx, id, session.ID); err != nil {
		return fmt.Errorf("%w: update finance record: %v", utils.ErrDatabaseError, err)
	}

	log.Info("Finance record marked as payment submitted")
	return nil
}

func (r *reconciliationService) RecordSubscriptionPayment(ctx context.Context, invoice pm.GatewayInvoice) error {
	log := r.log.With(zap.String("invoice_id", invoice.ID))

	email := strings.TrimSpace(invoice.CustomerEmail)
	if email == "" {
		log.Warn("Subscription invoice has no customer email, nothing recorded")
		return nil
	}

	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: find user: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		log.Warn("Subscription payment from unknown email, nothing recorded", zap.String("email", email))
		return nil
	}

	clientName := user.Name
	if clientName == "" {
		clientName = invoice.CustomerName
	}
	anchor := invoice.ID
	paidAt := r.now().Unix()
	record := &db_models.FinanceRecord{
		BaseModel:        db_models.BaseModel{ID: FinanceIDForInvoice(invoice.ID)},
		ClientID:         &user.ID,
		ClientName:       clientName,
		Title:            subscriptionTitle(invoice),
		TotalAmount:      pm.FromMinorUnits(invoice.AmountPaid),
		Currency:         invoice.Currency,
		Status:           db_models.FinanceStatusPaid,
		EntryType:        db_models.EntryTypeSubscription,
		GatewaySessionID: &anchor,
		PaidAt:           &paidAt,
	}

	created, err := r.finance.CreateIfAbsent(ctx, record)
	if err != nil {
		return fmt.Errorf("%w: create finance record: %v", utils.ErrDatabaseError, err)
	}
	if !created {
		log.Info("Subscription invoice already recorded, skipping")
		return nil
	}

	log.Info("Subscription payment recorded",
		zap.String("finance_record_id", record.ID.String()),
		zap.String("client_id", user.ID.String()))
	return nil
}

func decodeManifest(raw string) ([]db_models.OrderProduct, error) {
	if raw == "" {
		return nil, nil
	}
	var products []db_models.OrderProduct
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func shippingJSON(raw json.RawMessage) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return datatypes.JSON(trimmed)
}

func subscriptionTitle(invoice pm.GatewayInvoice) string {
	if invoice.SubscriptionDetails != nil {
		products, err := decodeManifest(invoice.SubscriptionDetails.Metadata[pm.MetadataProducts])
		if err == nil {
			for _, p := range products {
				if p.IsSubscription && p.Name != "" {
					return "Assinatura - " + p.Name
				}
			}
		}
	}
	return "Assinatura mensal"
}
