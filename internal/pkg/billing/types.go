package billing

import "strconv"

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// CustomerInput describes the payment customer created for a seller profile.
type CustomerInput struct {
	ProfileID string
	Email     string
	Name      string
}

// CheckoutInput describes a one-time payment for a listing boost.
type CheckoutInput struct {
	CustomerID   string
	ProductID    string
	SellerID     string
	ProductName  string
	DurationDays int
	AmountMinor  int64
	Currency     string
	Locale       string
	SuccessURL   string
	CancelURL    string
}

// Metadata returns the checkout metadata that identifies a paid boost when
// the completed session comes back through the webhook.
func (in CheckoutInput) Metadata() map[string]string {
	return map[string]string{
		MetadataType:         MetadataTypeListingBoost,
		MetadataProductID:    in.ProductID,
		MetadataSellerID:     in.SellerID,
		MetadataDurationDays: strconv.Itoa(in.DurationDays),
	}
}

// CheckoutSession is the part of a created session the caller needs.
type CheckoutSession struct {
	ID  string
	URL string
}

const (
	MetadataType             = "type"
	MetadataTypeListingBoost = "listing_boost"
	MetadataProductID        = "product_id"
	MetadataSellerID         = "seller_id"
	MetadataDurationDays     = "duration_days"
	MetadataProfileID        = "profile_id"
)
