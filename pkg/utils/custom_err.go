package utils

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration        = errors.New("configuration error")
	ErrValidation           = errors.New("invalid request")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrMissingCustomerEmail = errors.New("session has no customer email")
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrDatabaseError        = errors.New("database error")
)

// GatewayError carries a payment gateway rejection as-is.
type GatewayError struct {
	Message    string
	Code       string
	HTTPStatus int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error (%s): %s", e.Code, e.Message)
	}
	return "gateway error: " + e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Validationf wraps ErrValidation with a message suitable for end users.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ValidationMessage strips the sentinel prefix added by Validationf.
func ValidationMessage(err error) string {
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
