package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
	pm "storefront/internal/models/payment_models"
	"storefront/internal/secrets"
	"storefront/pkg/utils"
)

// WebhookService authenticates gateway notifications and routes them to the
// reconciliation handlers. Signature verification is the only trust boundary.
type WebhookService interface {
	Handle(ctx context.Context, rawBody []byte, signature string) error
}

type webhookService struct {
	secrets    secrets.Resolver
	reconciler ReconciliationService
	log        *zap.Logger
	tolerance  time.Duration
}

func NewWebhookService(resolver secrets.Resolver, reconciler ReconciliationService, log *zap.Logger) WebhookService {
	return &webhookService{
		secrets:    resolver,
		reconciler: reconciler,
		log:        log,
		tolerance:  webhook.DefaultTolerance,
	}
}

func (s *webhookService) Handle(ctx context.Context, rawBody []byte, signature string) error {
	creds, err := secrets.Require(s.secrets, secrets.StripeSecretKey, secrets.StripeWebhookSecret)
	if err != nil {
		return err
	}

	event, err := webhook.ConstructEventWithOptions(rawBody, signature, creds[secrets.StripeWebhookSecret],
		webhook.ConstructEventOptions{
			Tolerance:                s.tolerance,
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		s.log.Warn("Rejected webhook with invalid signature", zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrInvalidSignature, err)
	}

	// verified: run to completion even if the sender hangs up
	ctx = context.WithoutCancel(ctx)
	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))

	if event.Data == nil {
		log.Warn("Verified event carries no data object")
		return nil
	}

	switch string(event.Type) {
	case pm.EventCheckoutSessionCompleted:
		var session pm.GatewaySession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Error("Undecodable checkout session in verified event", zap.Error(err))
			return nil
		}
		return s.routeSession(ctx, log, session)

	case pm.EventInvoicePaymentSucceeded:
		var invoice pm.GatewayInvoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			log.Error("Undecodable invoice in verified event", zap.Error(err))
			return nil
		}
		if invoice.BillingReason != pm.BillingReasonSubscriptionCycle {
			log.Debug("Ignoring invoice payment", zap.String("billing_reason", invoice.BillingReason))
			return nil
		}
		return s.reconciler.RecordSubscriptionPayment(ctx, invoice)
	}

	log.Debug("Ignoring unhandled event type")
	return nil
}

func (s *webhookService) routeSession(ctx context.Context, log *zap.Logger, session pm.GatewaySession) error {
	switch session.Metadata[pm.MetadataSource] {
	case pm.SourceStore:
		return s.reconciler.CreateOrder(ctx, session)
	case pm.SourceFinance:
		if id := session.Metadata[pm.MetadataFinanceRecordID]; id != "" {
			return s.reconciler.MarkInvoiceSubmitted(ctx, id, session)
		}
	}

	log.Debug("Ignoring checkout session without a known source",
		zap.String("session_id", session.ID),
		zap.String("source", session.Metadata[pm.MetadataSource]))
	return nil
}
