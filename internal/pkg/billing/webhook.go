package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const EventCheckoutSessionCompleted = "checkout.session.completed"

// ErrNotBoostCheckout marks a completed checkout that is not a listing boost.
var ErrNotBoostCheckout = errors.New("checkout session is not a listing boost payment")

// VerifyStripeWebhook checks the Stripe-Signature header and decodes the event.
func VerifyStripeWebhook(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	if strings.TrimSpace(secret) == "" {
		return stripe.Event{}, ErrNotConfigured
	}
	if strings.TrimSpace(sigHeader) == "" {
		return stripe.Event{}, errors.New("missing stripe signature")
	}
	return webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// checkoutSession is the subset of a checkout.session object we read.
type checkoutSession struct {
	ID          string            `json:"id"`
	Mode        string            `json:"mode"`
	AmountTotal int64             `json:"amount_total"`
	Currency    string            `json:"currency"`
	Customer    string            `json:"customer"`
	Metadata    map[string]string `json:"metadata"`
}

// BoostPayment is a completed listing boost checkout.
type BoostPayment struct {
	SessionID    string
	SellerID     string
	ProductID    string
	DurationDays int
	AmountMinor  int64
	Currency     string
}

// ParseBoostPayment extracts a paid boost from a checkout.session.completed
// event. Sessions that are not one-time listing boost payments return
// ErrNotBoostCheckout.
func ParseBoostPayment(event stripe.Event) (*BoostPayment, error) {
	if string(event.Type) != EventCheckoutSessionCompleted || event.Data == nil {
		return nil, ErrNotBoostCheckout
	}
	var s checkoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("decode checkout.session: %w", err)
	}
	if s.Metadata[MetadataType] != MetadataTypeListingBoost || s.Mode != string(stripe.CheckoutSessionModePayment) {
		return nil, ErrNotBoostCheckout
	}

	p := &BoostPayment{
		SessionID:    s.ID,
		SellerID:     strings.TrimSpace(s.Metadata[MetadataSellerID]),
		ProductID:    strings.TrimSpace(s.Metadata[MetadataProductID]),
		DurationDays: 7,
		AmountMinor:  s.AmountTotal,
		Currency:     strings.ToLower(s.Currency),
	}
	if raw := strings.TrimSpace(s.Metadata[MetadataDurationDays]); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid duration_days %q", raw)
		}
		p.DurationDays = d
	}
	if p.SellerID == "" || p.ProductID == "" {
		return nil, errors.New("checkout metadata is missing seller_id or product_id")
	}
	return p, nil
}
