package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	stripesession "github.com/stripe/stripe-go/v82/checkout/session"
	stripecustomer "github.com/stripe/stripe-go/v82/customer"
)

// ErrNotConfigured is returned when no Stripe secret key is set.
var ErrNotConfigured = errors.New("stripe is not configured")

// Gateway creates payment customers and checkout sessions.
type Gateway interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (string, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
}

// StripeGateway implements Gateway with stripe-go.
type StripeGateway struct {
	apiKey string

	newCustomer func(params *stripe.CustomerParams) (*stripe.Customer, error)
	newSession  func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewStripeGateway(apiKey string) *StripeGateway {
	return &StripeGateway{
		apiKey:      strings.TrimSpace(apiKey),
		newCustomer: stripecustomer.New,
		newSession:  stripesession.New,
	}
}

func (g *StripeGateway) configured() error {
	if g == nil || g.apiKey == "" {
		return ErrNotConfigured
	}
	stripe.Key = g.apiKey
	return nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, in CustomerInput) (string, error) {
	if err := g.configured(); err != nil {
		return "", err
	}
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if email := strings.TrimSpace(in.Email); email != "" {
		params.Email = stripe.String(email)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		params.Name = stripe.String(name)
	}
	params.AddMetadata(MetadataProfileID, in.ProfileID)

	c, err := g.newCustomer(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	if c == nil || c.ID == "" {
		return "", errors.New("create stripe customer: empty customer id")
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if err := g.configured(); err != nil {
		return nil, err
	}
	if in.AmountMinor <= 0 {
		return nil, fmt.Errorf("create checkout session: invalid amount %d", in.AmountMinor)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(in.Currency)),
					UnitAmount: stripe.Int64(in.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	if in.Locale != "" {
		params.Locale = stripe.String(in.Locale)
	}
	for k, v := range in.Metadata() {
		params.AddMetadata(k, v)
	}

	s, err := g.newSession(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if s == nil || strings.TrimSpace(s.URL) == "" {
		return nil, errors.New("create checkout session: empty session url")
	}
	return &CheckoutSession{ID: s.ID, URL: strings.TrimSpace(s.URL)}, nil
}
