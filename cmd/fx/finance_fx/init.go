package finance_fx

import (
	"go.uber.org/fx"
	"storefront/internal/services"
)

var Module = fx.Provide(services.NewFinanceService)
