package payment_models

import "encoding/json"

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventInvoicePaymentSucceeded  = "invoice.payment_succeeded"

	BillingReasonSubscriptionCycle = "subscription_cycle"
)

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GatewaySession is the subset of a checkout session object the reconciliation needs.
type GatewaySession struct {
	ID              string            `json:"id"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	CustomerEmail   string            `json:"customer_email"`
	ShippingDetails json.RawMessage   `json:"shipping_details"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	PaymentStatus   string            `json:"payment_status"`
}

func (s GatewaySession) Email() string {
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}

func (s GatewaySession) Name() string {
	if s.CustomerDetails != nil {
		return s.CustomerDetails.Name
	}
	return ""
}

type SubscriptionDetails struct {
	Metadata map[string]string `json:"metadata"`
}

type GatewayInvoice struct {
	ID                  string               `json:"id"`
	CustomerEmail       string               `json:"customer_email"`
	CustomerName        string               `json:"customer_name"`
	AmountPaid          int64                `json:"amount_paid"`
	Currency            string               `json:"currency"`
	BillingReason       string               `json:"billing_reason"`
	SubscriptionDetails *SubscriptionDetails `json:"subscription_details"`
}
