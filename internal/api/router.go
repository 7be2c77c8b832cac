package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/pkg/middleware"
)

const RoleAdmin = "admin"

func NewRouter(
	cfg config.Config,
	log *zap.Logger,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AppBaseURL))

	RegisterRoutes(r, cfg, paymentController, adminController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg config.Config,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController) {

	apiGroup := r.Group("/api")

	apiGroup.POST("/checkout", paymentController.CreateCheckoutSession)
	apiGroup.GET("/checkout/sessions/:id/status", paymentController.SessionStatus)
	apiGroup.POST("/webhooks/stripe", paymentController.HandleWebhook)

	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware([]byte(cfg.JWTSecret)), middleware.RoleMiddleware(RoleAdmin))
	adminGroup.GET("/orders", adminController.ListOrders)
	adminGroup.GET("/finance", adminController.ListFinance)
	adminGroup.POST("/finance", adminController.CreateFinanceRecord)
	adminGroup.POST("/finance/:id/confirm", adminController.ConfirmFinanceRecord)
	adminGroup.GET("/dashboard", dashboardController.GetDashboard)
}
