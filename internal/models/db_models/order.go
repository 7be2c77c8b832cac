package db_models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pendente"
	OrderStatusProcessing OrderStatus = "Processando"
	OrderStatusShipped    OrderStatus = "Enviado"
	OrderStatusDelivered  OrderStatus = "Entregue"
	OrderStatusCanceled   OrderStatus = "Cancelado"
)

// OrderProduct is the compact manifest echoed back by the gateway in session metadata.
type OrderProduct struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	IsSubscription bool   `json:"isSubscription"`
}

type Order struct {
	BaseModel
	CustomerName    string
	CustomerEmail   string                            `gorm:"index;not null"`
	ShippingDetails datatypes.JSON                    `gorm:"type:jsonb"`
	AmountTotal     decimal.Decimal                   `gorm:"type:numeric(12,2);not null"`
	Currency        string                            `gorm:"size:3"`
	Status          OrderStatus                       `gorm:"size:32;index"`
	Products        datatypes.JSONSlice[OrderProduct] `gorm:"type:jsonb"`

	// GatewaySessionID is the idempotency anchor for webhook redelivery.
	GatewaySessionID string `gorm:"uniqueIndex;not null"`
}

func (Order) TableName() string { return "orders" }
