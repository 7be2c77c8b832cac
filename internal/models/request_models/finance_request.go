package request_models

import "github.com/shopspring/decimal"

type CreateFinanceRecordRequest struct {
	ClientID    string          `json:"client_id" binding:"omitempty,uuid"`
	ClientName  string          `json:"client_name" binding:"max=120"`
	Title       string          `json:"title" binding:"required,min=2,max=200"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type PageQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}
