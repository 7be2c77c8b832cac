package response_models

type OrderProduct struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	IsSubscription bool   `json:"isSubscription"`
}

type OrderResponse struct {
	ID               string         `json:"id"`
	CustomerName     string         `json:"customer_name"`
	CustomerEmail    string         `json:"customer_email"`
	AmountTotal      string         `json:"amount_total"`
	Currency         string         `json:"currency"`
	Status           string         `json:"status"`
	Products         []OrderProduct `json:"products"`
	GatewaySessionID string         `json:"gateway_session_id"`
	CreatedAt        int64          `json:"created_at"`
}

type FinanceRecordResponse struct {
	ID               string  `json:"id"`
	ClientID         *string `json:"client_id,omitempty"`
	ClientName       string  `json:"client_name,omitempty"`
	Title            string  `json:"title"`
	TotalAmount      string  `json:"total_amount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	EntryType        string  `json:"entry_type"`
	GatewaySessionID *string `json:"gateway_session_id,omitempty"`
	PaidAt           *int64  `json:"paid_at,omitempty"`
	CreatedAt        int64   `json:"created_at"`
}

type PageResponse[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
