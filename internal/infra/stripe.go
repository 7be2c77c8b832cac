package infra

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
	pm "storefront/internal/models/payment_models"
	"storefront/internal/secrets"
	"storefront/pkg/utils"
)

// StripeGateway opens Stripe Checkout sessions. The API key is resolved on
// every call so a rotated secret file takes effect without a restart.
type StripeGateway struct {
	secrets  secrets.Resolver
	backends *stripe.Backends
	log      *zap.Logger
}

// NewStripeGateway uses the default Stripe backends when backends is nil.
func NewStripeGateway(resolver secrets.Resolver, backends *stripe.Backends, log *zap.Logger) *StripeGateway {
	return &StripeGateway{
		secrets:  resolver,
		backends: backends,
		log:      log,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, spec *pm.GatewaySessionSpec) (*pm.CreatedSession, error) {
	creds, err := secrets.Require(g.secrets, secrets.StripeSecretKey)
	if err != nil {
		return nil, err
	}

	sc := client.New(creds[secrets.StripeSecretKey], g.backends)

	params := CheckoutSessionParams(spec)
	params.Context = ctx

	s, err := sc.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.log.Warn("Stripe rejected checkout session",
				zap.String("stripe_code", string(stripeErr.Code)),
				zap.String("stripe_message", stripeErr.Msg),
				zap.String("request_id", stripeErr.RequestID))
			return nil, &utils.GatewayError{
				Message:    stripeErr.Msg,
				Code:       string(stripeErr.Code),
				HTTPStatus: stripeErr.HTTPStatusCode,
				Err:        err,
			}
		}
		g.log.Error("Stripe checkout session call failed", zap.Error(err))
		return nil, &utils.GatewayError{Message: err.Error(), Err: err}
	}

	return &pm.CreatedSession{ID: s.ID, URL: s.URL}, nil
}

// CheckoutSessionParams maps a session spec onto Stripe's request shape.
func CheckoutSessionParams(spec *pm.GatewaySessionSpec) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(spec.Mode)),
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
	}

	for _, li := range spec.LineItems {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(spec.Currency),
			UnitAmount: stripe.Int64(li.UnitAmountMinor),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(li.Name),
			},
		}
		if len(li.ImageRefs) > 0 {
			priceData.ProductData.Images = stripe.StringSlice(li.ImageRefs)
		}
		if li.Recurring != "" {
			priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(string(li.Recurring)),
			}
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(li.Quantity),
		})
	}

	if spec.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(spec.CustomerEmail)
	}
	for k, v := range spec.Metadata {
		params.AddMetadata(k, v)
	}
	if len(spec.ShippingCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(spec.ShippingCountries),
		}
	}

	if spec.Subscription != nil {
		params.PaymentMethodOptions = &stripe.CheckoutSessionPaymentMethodOptionsParams{
			Card: &stripe.CheckoutSessionPaymentMethodOptionsCardParams{
				RequestThreeDSecure: stripe.String(spec.Subscription.RequestThreeDSecure),
			},
			Boleto: &stripe.CheckoutSessionPaymentMethodOptionsBoletoParams{
				ExpiresAfterDays: stripe.Int64(spec.Subscription.BoletoExpiresAfterDays),
			},
		}
		params.PaymentMethodCollection = stripe.String(spec.Subscription.PaymentMethodCollection)
		if len(spec.SubscriptionMetadata) > 0 {
			params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
				Metadata: spec.SubscriptionMetadata,
			}
		}
	}

	return params
}
