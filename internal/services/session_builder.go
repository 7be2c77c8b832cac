package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/config"
	"storefront/internal/models/db_models"
	pm "storefront/internal/models/payment_models"
	"storefront/pkg/utils"
)

const (
	ShippingLineName = "Frete"

	cartSuccessPath    = "/loja/sucesso?session_id={CHECKOUT_SESSION_ID}"
	cartCancelPath     = "/loja/carrinho"
	invoiceSuccessPath = "/dashboard/financeiro?pagamento=sucesso&session_id={CHECKOUT_SESSION_ID}"
	invoiceCancelPath  = "/dashboard/financeiro?pagamento=cancelado"
)

// Options applied to every subscription-mode session.
var DefaultSubscriptionOptions = pm.SubscriptionOptions{
	RequestThreeDSecure:     "any",
	BoletoExpiresAfterDays:  3,
	PaymentMethodCollection: "always",
}

// SessionBuilder turns a validated checkout request into a gateway session spec.
// It performs no I/O.
type SessionBuilder struct {
	currency          string
	baseURL           string
	shippingCountries []string
}

func NewSessionBuilder(cfg config.Config) *SessionBuilder {
	return &SessionBuilder{
		currency:          cfg.Currency,
		baseURL:           strings.TrimRight(cfg.AppBaseURL, "/"),
		shippingCountries: cfg.ShippingCountries,
	}
}

func (b *SessionBuilder) Build(req pm.CheckoutRequest) (*pm.GatewaySessionSpec, error) {
	switch {
	case req.Cart != nil && req.Invoice != nil:
		return nil, utils.Validationf("request mixes cart and invoice fields")
	case req.Cart != nil:
		return b.buildCart(req.Cart)
	case req.Invoice != nil:
		return b.buildInvoice(req.Invoice)
	default:
		return nil, utils.Validationf("request has neither cart nor invoice data")
	}
}

func (b *SessionBuilder) buildCart(cart *pm.CartCheckout) (*pm.GatewaySessionSpec, error) {
	if len(cart.Items) == 0 {
		return nil, utils.Validationf("cart is empty")
	}

	var (
		subscription       *pm.CartLine
		subscriptionAmount int64
		oneTime            []pm.LineItem
	)
	for i := range cart.Items {
		item := &cart.Items[i]

		if item.IsSubscription {
			if subscription != nil {
				return nil, utils.Validationf("only one subscription item is allowed per checkout")
			}
			if item.SubscriptionPrice == nil {
				return nil, utils.Validationf("subscription item %q has no subscription price", item.Name)
			}
			amount, err := minorUnits("subscription item "+strconv.Quote(item.Name), *item.SubscriptionPrice)
			if err != nil {
				return nil, err
			}
			if amount <= 0 {
				return nil, utils.Validationf("subscription item %q has no subscription price", item.Name)
			}
			subscription = item
			subscriptionAmount = amount
			continue
		}

		if item.Quantity < 1 {
			return nil, utils.Validationf("cart item %q has an invalid quantity", item.Name)
		}
		amount, err := minorUnits("cart item "+strconv.Quote(item.Name), item.EffectivePrice())
		if err != nil {
			return nil, err
		}
		if amount <= 0 {
			return nil, utils.Validationf("cart item %q has an invalid price", item.Name)
		}
		oneTime = append(oneTime, pm.LineItem{
			Name:            item.Name,
			ImageRefs:       imageRefs(item.ImageURL),
			UnitAmountMinor: amount,
			Quantity:        item.Quantity,
		})
	}

	spec := &pm.GatewaySessionSpec{
		Currency:      b.currency,
		Mode:          pm.SessionModePayment,
		SuccessURL:    b.baseURL + cartSuccessPath,
		CancelURL:     b.baseURL + cartCancelPath,
		CustomerEmail: cart.CustomerEmail,
	}

	if subscription != nil {
		spec.Mode = pm.SessionModeSubscription
		spec.LineItems = append(spec.LineItems, pm.LineItem{
			Name:            subscription.Name,
			ImageRefs:       imageRefs(subscription.ImageURL),
			UnitAmountMinor: subscriptionAmount,
			Recurring:       pm.IntervalMonth,
			Quantity:        1,
		})
		opts := DefaultSubscriptionOptions
		spec.Subscription = &opts
	}
	spec.LineItems = append(spec.LineItems, oneTime...)

	shipping, err := minorUnits("shipping", cart.ShippingCost)
	if err != nil {
		return nil, err
	}
	if shippingApplies(cart.Items, shipping) {
		spec.LineItems = append(spec.LineItems, pm.LineItem{
			Name:            ShippingLineName,
			UnitAmountMinor: shipping,
			Quantity:        1,
		})
	}
	if requiresShipping(cart.Items) {
		spec.ShippingCountries = b.shippingCountries
	}

	manifest, err := productManifest(cart.Items)
	if err != nil {
		return nil, err
	}
	spec.Metadata = map[string]string{
		pm.MetadataSource:   pm.SourceStore,
		pm.MetadataProducts: manifest,
	}
	if spec.Mode == pm.SessionModeSubscription {
		spec.SubscriptionMetadata = map[string]string{
			pm.MetadataSource:   pm.SourceStore,
			pm.MetadataProducts: manifest,
		}
	}

	return spec, nil
}

func (b *SessionBuilder) buildInvoice(inv *pm.InvoiceCheckout) (*pm.GatewaySessionSpec, error) {
	amount, err := minorUnits("invoice", inv.Amount)
	if err != nil {
		return nil, err
	}
	if inv.FinanceRecordID == "" || amount <= 0 || strings.TrimSpace(inv.Title) == "" || inv.CustomerEmail == "" {
		return nil, utils.Validationf("invoice data incomplete")
	}

	return &pm.GatewaySessionSpec{
		LineItems: []pm.LineItem{{
			Name:            inv.Title,
			UnitAmountMinor: amount,
			Quantity:        1,
		}},
		Currency:      b.currency,
		Mode:          pm.SessionModePayment,
		SuccessURL:    b.baseURL + invoiceSuccessPath,
		CancelURL:     b.baseURL + invoiceCancelPath,
		CustomerEmail: inv.CustomerEmail,
		Metadata: map[string]string{
			pm.MetadataSource:          pm.SourceFinance,
			pm.MetadataFinanceRecordID: inv.FinanceRecordID,
		},
	}, nil
}

func requiresShipping(items []pm.CartLine) bool {
	for _, it := range items {
		if it.RequiresShipping {
			return true
		}
	}
	return false
}

// shippingApplies: some item ships, not every shipping item is free, and the cost is positive.
func shippingApplies(items []pm.CartLine, costMinor int64) bool {
	needs, allFree := false, true
	for _, it := range items {
		if !it.RequiresShipping {
			continue
		}
		needs = true
		if !it.FreeShipping {
			allFree = false
		}
	}
	return needs && !allFree && costMinor > 0
}

func minorUnits(field string, amount decimal.Decimal) (int64, error) {
	minor, err := pm.ToMinorUnits(amount)
	if err != nil {
		return 0, utils.Validationf("%s amount too large", field)
	}
	return minor, nil
}

// productManifest serialises the minimal product list carried in metadata. Names
// are dropped when the full manifest would not fit in one metadata value.
func productManifest(items []pm.CartLine) (string, error) {
	products := make([]db_models.OrderProduct, 0, len(items))
	for _, it := range items {
		products = append(products, db_models.OrderProduct{
			ID:             it.ID,
			Name:           it.Name,
			IsSubscription: it.IsSubscription,
		})
	}

	b, err := json.Marshal(products)
	if err != nil {
		return "", err
	}
	if len(b) <= pm.MaxMetadataValueLen {
		return string(b), nil
	}

	for i := range products {
		products[i].Name = ""
	}
	if b, err = json.Marshal(products); err != nil {
		return "", err
	}
	if len(b) > pm.MaxMetadataValueLen {
		return "", utils.Validationf("cart has too many items for a single checkout")
	}
	return string(b), nil
}

func imageRefs(url string) []string {
	if url == "" {
		return nil
	}
	return []string{url}
}
