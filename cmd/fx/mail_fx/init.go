package mail_fx

import (
	"go.uber.org/fx"
	"storefront/internal/services"
)

var Module = fx.Provide(services.NewPaymentNotifier)
