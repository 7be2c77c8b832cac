package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// IANA zone used for bucketing, UTC when empty
	Timezone string `json:"timezone,omitempty"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatusTotal struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Total  string `json:"total"`
}

type KPIBlock struct {
	TotalOrders    int64         `json:"total_orders"`
	OrdersByStatus []StatusCount `json:"orders_by_status"`

	FinanceByStatus  []StatusTotal `json:"finance_by_status"`
	OutstandingTotal string        `json:"outstanding_total"` // Pendente + Pagamento Enviado
	PaidTotal        string        `json:"paid_total"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  string    `json:"value"`
}

type RevenueSeries struct {
	Currency string        `json:"currency"`
	Points   []SeriesPoint `json:"points"`
	Total    string        `json:"total"`
}

type DashboardReport struct {
	Range          TimeRange       `json:"range"`
	KPIs           KPIBlock        `json:"kpis"`
	StoreRevenue   RevenueSeries   `json:"store_revenue"`
	FinanceRevenue RevenueSeries   `json:"finance_revenue"`
	RecentOrders   []OrderResponse `json:"recent_orders"`
}
