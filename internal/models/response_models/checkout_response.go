package response_models

type CheckoutSessionResponse struct {
	SessionID  string `json:"sessionId"`
	SessionURL string `json:"sessionUrl"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

// SessionStatusResponse lets the storefront success page wait for the webhook
// instead of trusting the redirect.
type SessionStatusResponse struct {
	SessionID  string `json:"sessionId"`
	Reconciled bool   `json:"reconciled"`
	OrderID    string `json:"orderId,omitempty"`
	Status     string `json:"status,omitempty"`
}
