package request_models

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
	pm "storefront/internal/models/payment_models"
	"storefront/pkg/utils"
)

type CartLineInput struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	UnitPrice         decimal.Decimal  `json:"unitPrice"`
	PromoPrice        *decimal.Decimal `json:"promoPrice,omitempty"`
	Quantity          int64            `json:"quantity"`
	ImageURL          string           `json:"imageUrl"`
	RequiresShipping  bool             `json:"requiresShipping"`
	FreeShipping      bool             `json:"freeShipping"`
	IsSubscription    bool             `json:"isSubscription"`
	SubscriptionPrice *decimal.Decimal `json:"subscriptionPrice,omitempty"`
}

// CheckoutRequest is the wire body of POST /api/checkout. It carries either
// cart fields or invoice fields, never both.
type CheckoutRequest struct {
	CartItems    *[]CartLineInput `json:"cartItems,omitempty"`
	ShippingCost *decimal.Decimal `json:"shippingCost,omitempty"`

	FinanceRecordID string           `json:"financeRecordId,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Title           string           `json:"title,omitempty"`

	CustomerEmail string `json:"customerEmail,omitempty"`
}

func (r CheckoutRequest) hasCart() bool {
	return r.CartItems != nil || r.ShippingCost != nil
}

func (r CheckoutRequest) hasInvoice() bool {
	return r.FinanceRecordID != "" || r.Amount != nil || strings.TrimSpace(r.Title) != ""
}

// ToCheckout selects the mode and returns a typed request, or a validation error.
func (r CheckoutRequest) ToCheckout() (pm.CheckoutRequest, error) {
	switch {
	case r.hasCart() && r.hasInvoice():
		return pm.CheckoutRequest{}, utils.Validationf("request mixes cart and invoice fields")
	case r.hasCart():
		return r.toCart()
	case r.hasInvoice():
		return r.toInvoice()
	default:
		return pm.CheckoutRequest{}, utils.Validationf("request has neither cart nor invoice data")
	}
}

func (r CheckoutRequest) toCart() (pm.CheckoutRequest, error) {
	if r.CartItems == nil || len(*r.CartItems) == 0 {
		return pm.CheckoutRequest{}, utils.Validationf("cart is empty")
	}

	email := strings.TrimSpace(r.CustomerEmail)
	if email != "" && !validEmail(email) {
		return pm.CheckoutRequest{}, utils.Validationf("customer email is invalid")
	}

	cart := &pm.CartCheckout{CustomerEmail: email}
	if r.ShippingCost != nil {
		if r.ShippingCost.IsNegative() {
			return pm.CheckoutRequest{}, utils.Validationf("shipping cost cannot be negative")
		}
		cart.ShippingCost = *r.ShippingCost
	}

	for i, in := range *r.CartItems {
		if strings.TrimSpace(in.ID) == "" || strings.TrimSpace(in.Name) == "" {
			return pm.CheckoutRequest{}, utils.Validationf("cart item %d is missing id or name", i+1)
		}
		cart.Items = append(cart.Items, pm.CartLine{
			ID:                in.ID,
			Name:              strings.TrimSpace(in.Name),
			UnitPrice:         in.UnitPrice,
			PromoPrice:        in.PromoPrice,
			Quantity:          in.Quantity,
			ImageURL:          strings.TrimSpace(in.ImageURL),
			RequiresShipping:  in.RequiresShipping,
			FreeShipping:      in.FreeShipping,
			IsSubscription:    in.IsSubscription,
			SubscriptionPrice: in.SubscriptionPrice,
		})
	}

	return pm.CheckoutRequest{Cart: cart}, nil
}

func (r CheckoutRequest) toInvoice() (pm.CheckoutRequest, error) {
	title := strings.TrimSpace(r.Title)
	email := strings.TrimSpace(r.CustomerEmail)

	if r.FinanceRecordID == "" || r.Amount == nil || !r.Amount.IsPositive() || title == "" || email == "" {
		return pm.CheckoutRequest{}, utils.Validationf("invoice data incomplete")
	}
	if !validEmail(email) {
		return pm.CheckoutRequest{}, utils.Validationf("customer email is invalid")
	}

	return pm.CheckoutRequest{Invoice: &pm.InvoiceCheckout{
		FinanceRecordID: r.FinanceRecordID,
		Amount:          *r.Amount,
		Title:           title,
		CustomerEmail:   email,
	}}, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
