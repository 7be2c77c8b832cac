package controllers_fx

import (
	"go.uber.org/fx"
	"storefront/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController))
