package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

// Stripe events are small; anything larger is not a gateway notification.
const maxWebhookBodyBytes = 256 << 10

type PaymentController struct {
	checkoutService services.CheckoutService
	webhookService  services.WebhookService
}

func NewPaymentController(checkoutService services.CheckoutService, webhookService services.WebhookService) *PaymentController {
	return &PaymentController{
		checkoutService: checkoutService,
		webhookService:  webhookService,
	}
}

// CreateCheckoutSession godoc
// @Summary Open a hosted checkout session for a cart or a finance invoice
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CheckoutRequest true "Cart or invoice checkout"
// @Success 200 {object} response_models.CheckoutSessionResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/checkout [post]
func (p *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var request request_models.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	checkout, err := request.ToCheckout()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	session, err := p.checkoutService.CreateSession(c.Request.Context(), checkout)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SessionStatus is polled by the storefront success page.
func (p *PaymentController) SessionStatus(c *gin.Context) {
	status, err := p.checkoutService.SessionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// HandleWebhook must see the body exactly as sent; it is never bound or re-encoded.
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(c, http.StatusRequestEntityTooLarge, "Webhook payload too large")
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "Unable to read webhook payload")
		return
	}

	if err := p.webhookService.Handle(c.Request.Context(), body, c.GetHeader("Stripe-Signature")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response_models.WebhookAckResponse{Received: true})
}
