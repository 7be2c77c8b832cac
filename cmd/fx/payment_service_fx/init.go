package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"storefront/internal/infra"
	"storefront/internal/secrets"
	"storefront/internal/services"
)

var Module = fx.Provide(
	services.NewSessionBuilder,
	provideGateway,
	services.NewCheckoutService,
	services.NewReconciliationService,
	services.NewWebhookService,
)

func provideGateway(resolver secrets.Resolver, log *zap.Logger) services.PaymentGateway {
	return infra.NewStripeGateway(resolver, nil, log.Named("stripe"))
}
