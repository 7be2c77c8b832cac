package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed call on the checkout and webhook endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Kind    string `json:"kind"`
	TraceID string `json:"trace_id,omitempty"`
}

const (
	KindValidation    = "validation_error"
	KindSignature     = "signature_error"
	KindConfiguration = "configuration_error"
	KindGateway       = "gateway_error"
	KindNotFound      = "not_found"
	KindConflict      = "conflict"
	KindInternal      = "internal_error"
)

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		Kind:    kindForStatus(code),
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")
	log := zap.L().With(zap.String("trace_id", traceID), zap.Error(err))

	var gwErr *GatewayError
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   ValidationMessage(err),
			Kind:    KindValidation,
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Webhook signature verification failed",
			Kind:    KindSignature,
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidPage):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Page must be greater than 0",
			Kind:    KindValidation,
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidPageSize):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Page size must be between 1 and 100",
			Kind:    KindValidation,
			TraceID: traceID,
		})
	case errors.Is(err, ErrRecordNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Record not found",
			Kind:    KindNotFound,
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   err.Error(),
			Kind:    KindConflict,
			TraceID: traceID,
		})
	case errors.As(err, &gwErr):
		// upstream message and code are forwarded untouched
		log.Error("Payment gateway rejected request",
			zap.String("gateway_code", gwErr.Code),
			zap.Int("gateway_status", gwErr.HTTPStatus))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   gwErr.Message,
			Code:    gwErr.Code,
			Kind:    KindGateway,
			TraceID: traceID,
		})
	case errors.Is(err, ErrConfiguration):
		log.Error("Configuration error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Payment service is not configured",
			Kind:    KindConfiguration,
			TraceID: traceID,
		})
	case errors.Is(err, ErrDatabaseError):
		log.Error("Database error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Kind:    KindInternal,
			TraceID: traceID,
		})
	default:
		log.Error("Unknown error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Kind:    KindInternal,
			TraceID: traceID,
		})
	}
}

func kindForStatus(code int) string {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusConflict:
		return KindConflict
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindInternal
	}
}
