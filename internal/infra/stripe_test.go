package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
	pm "storefront/internal/models/payment_models"
	"storefront/internal/secrets"
	"storefront/pkg/utils"
)

type staticSecrets map[string]string

func (s staticSecrets) Resolve(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

func testBackends(t *testing.T, handler http.HandlerFunc) *stripe.Backends {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
}

func subscriptionSpec() *pm.GatewaySessionSpec {
	opts := pm.SubscriptionOptions{RequestThreeDSecure: "any", BoletoExpiresAfterDays: 3, PaymentMethodCollection: "always"}
	return &pm.GatewaySessionSpec{
		LineItems: []pm.LineItem{
			{Name: "Clube do Cupcake", ImageRefs: []string{"https://cdn.example.com/club.png"}, UnitAmountMinor: 4990, Recurring: pm.IntervalMonth, Quantity: 1},
			{Name: "Cupcake", UnitAmountMinor: 1000, Quantity: 2},
		},
		Currency:             "brl",
		Mode:                 pm.SessionModeSubscription,
		SuccessURL:           "https://loja.example.com/loja/sucesso?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:            "https://loja.example.com/loja/carrinho",
		CustomerEmail:        "ana@example.com",
		Metadata:             map[string]string{pm.MetadataSource: pm.SourceStore, pm.MetadataProducts: `[{"id":"club","isSubscription":true}]`},
		SubscriptionMetadata: map[string]string{pm.MetadataSource: pm.SourceStore},
		ShippingCountries:    []string{"BR"},
		Subscription:         &opts,
	}
}

func TestStripeGateway_CreateSession(t *testing.T) {
	var form url.Values
	backends := testBackends(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`))
	})
	gw := NewStripeGateway(staticSecrets{secrets.StripeSecretKey: "sk_test_123"}, backends, zap.NewNop())

	created, err := gw.CreateSession(context.Background(), subscriptionSpec())

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", created.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", created.URL)

	assert.Equal(t, "subscription", form.Get("mode"))
	assert.Equal(t, "4990", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "month", form.Get("line_items[0][price_data][recurring][interval]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "https://cdn.example.com/club.png", form.Get("line_items[0][price_data][product_data][images][0]"))
	assert.Equal(t, "1000", form.Get("line_items[1][price_data][unit_amount]"))
	assert.Empty(t, form.Get("line_items[1][price_data][recurring][interval]"))
	assert.Equal(t, "2", form.Get("line_items[1][quantity]"))
	assert.Equal(t, "brl", form.Get("line_items[1][price_data][currency]"))
	assert.Equal(t, "store", form.Get("metadata[source]"))
	assert.Equal(t, "store", form.Get("subscription_data[metadata][source]"))
	assert.Equal(t, "any", form.Get("payment_method_options[card][request_three_d_secure]"))
	assert.Equal(t, "3", form.Get("payment_method_options[boleto][expires_after_days]"))
	assert.Equal(t, "always", form.Get("payment_method_collection"))
	assert.Equal(t, "BR", form.Get("shipping_address_collection[allowed_countries][0]"))
	assert.Equal(t, "ana@example.com", form.Get("customer_email"))
}

func TestStripeGateway_ForwardsGatewayError(t *testing.T) {
	backends := testBackends(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Request-Id", "req_123")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"url_invalid","message":"Not a valid URL"}}`))
	})
	gw := NewStripeGateway(staticSecrets{secrets.StripeSecretKey: "sk_test_123"}, backends, zap.NewNop())

	_, err := gw.CreateSession(context.Background(), subscriptionSpec())

	var gwErr *utils.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Not a valid URL", gwErr.Message)
	assert.Equal(t, "url_invalid", gwErr.Code)
	assert.Equal(t, http.StatusBadRequest, gwErr.HTTPStatus)
}

func TestStripeGateway_MissingKeyNeverCallsGateway(t *testing.T) {
	var calls atomic.Int32
	backends := testBackends(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	gw := NewStripeGateway(staticSecrets{}, backends, zap.NewNop())

	_, err := gw.CreateSession(context.Background(), subscriptionSpec())

	require.ErrorIs(t, err, utils.ErrConfiguration)
	assert.Zero(t, calls.Load())
}

func TestCheckoutSessionParams_PaymentMode(t *testing.T) {
	spec := &pm.GatewaySessionSpec{
		LineItems:  []pm.LineItem{{Name: "Plano X", UnitAmountMinor: 25050, Quantity: 1}},
		Currency:   "brl",
		Mode:       pm.SessionModePayment,
		SuccessURL: "https://loja.example.com/ok",
		CancelURL:  "https://loja.example.com/cancel",
		Metadata:   map[string]string{pm.MetadataSource: pm.SourceFinance, pm.MetadataFinanceRecordID: "f1"},
	}

	params := CheckoutSessionParams(spec)

	assert.Equal(t, "payment", *params.Mode)
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, int64(25050), *params.LineItems[0].PriceData.UnitAmount)
	assert.Nil(t, params.LineItems[0].PriceData.Recurring)
	assert.Nil(t, params.PaymentMethodOptions)
	assert.Nil(t, params.PaymentMethodCollection)
	assert.Nil(t, params.SubscriptionData)
	assert.Nil(t, params.ShippingAddressCollection)
	assert.Nil(t, params.CustomerEmail)
}
