package payment_models

import "github.com/shopspring/decimal"

type CheckoutMode string

const (
	CheckoutModeCart    CheckoutMode = "cart"
	CheckoutModeInvoice CheckoutMode = "invoice"
)

type CartLine struct {
	ID                string
	Name              string
	UnitPrice         decimal.Decimal
	PromoPrice        *decimal.Decimal
	Quantity          int64
	ImageURL          string
	RequiresShipping  bool
	FreeShipping      bool
	IsSubscription    bool
	SubscriptionPrice *decimal.Decimal
}

// EffectivePrice is the promo price when one is set and positive, otherwise the unit price.
func (l CartLine) EffectivePrice() decimal.Decimal {
	if l.PromoPrice != nil && l.PromoPrice.IsPositive() {
		return *l.PromoPrice
	}
	return l.UnitPrice
}

type CartCheckout struct {
	Items         []CartLine
	ShippingCost  decimal.Decimal
	CustomerEmail string
}

type InvoiceCheckout struct {
	FinanceRecordID string
	Amount          decimal.Decimal
	Title           string
	CustomerEmail   string
}

// CheckoutRequest holds exactly one of Cart or Invoice.
type CheckoutRequest struct {
	Cart    *CartCheckout
	Invoice *InvoiceCheckout
}

func (r CheckoutRequest) Mode() CheckoutMode {
	if r.Cart != nil {
		return CheckoutModeCart
	}
	return CheckoutModeInvoice
}
