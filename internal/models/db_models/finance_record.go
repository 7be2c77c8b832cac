package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FinanceStatus string

const (
	FinanceStatusPending          FinanceStatus = "Pendente"
	FinanceStatusPaymentSubmitted FinanceStatus = "Pagamento Enviado"
	FinanceStatusPaid             FinanceStatus = "Pago"
	FinanceStatusCanceled         FinanceStatus = "Cancelado"
)

type FinanceEntryType string

const (
	EntryTypeManual       FinanceEntryType = "manual"
	EntryTypeSubscription FinanceEntryType = "subscription"
)

type FinanceRecord struct {
	BaseModel
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	ClientName  string
	Title       string           `gorm:"not null"`
	TotalAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Currency    string           `gorm:"size:3"`
	Status      FinanceStatus    `gorm:"size:32;index"`
	EntryType   FinanceEntryType `gorm:"size:16;index"`

	// Nil until a gateway session or invoice settles against the record.
	GatewaySessionID *string `gorm:"uniqueIndex"`
	PaidAt           *int64
}

func (FinanceRecord) TableName() string { return "finance" }
