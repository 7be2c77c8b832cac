package payment_models

type SessionMode string

const (
	SessionModePayment      SessionMode = "payment"
	SessionModeSubscription SessionMode = "subscription"
)

type RecurringInterval string

const IntervalMonth RecurringInterval = "month"

const (
	MetadataSource          = "source"
	MetadataProducts        = "products"
	MetadataFinanceRecordID = "financeRecordId"

	SourceStore   = "store"
	SourceFinance = "finance"

	// MaxMetadataValueLen is the gateway limit for a single metadata value.
	MaxMetadataValueLen = 500
)

type LineItem struct {
	Name            string
	ImageRefs       []string
	UnitAmountMinor int64
	Recurring       RecurringInterval
	Quantity        int64
}

type SubscriptionOptions struct {
	RequestThreeDSecure     string
	BoletoExpiresAfterDays  int64
	PaymentMethodCollection string
}

// GatewaySessionSpec is everything sent to the gateway to open a hosted checkout.
type GatewaySessionSpec struct {
	LineItems     []LineItem
	Currency      string
	Mode          SessionMode
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string

	// SubscriptionMetadata is copied onto the subscription so cycle invoices carry it.
	SubscriptionMetadata map[string]string
	ShippingCountries    []string
	Subscription         *SubscriptionOptions
}

type CreatedSession struct {
	ID  string
	URL string
}
