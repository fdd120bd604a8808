package boosts

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
	"github.com/treido/treido-go/internal/pkg/metrics"
	"github.com/treido/treido-go/internal/pkg/validation"
)

var checkoutFieldKeys = map[string]string{
	"ProductID":    "boost.invalid_product",
	"DurationDays": "boost.invalid_duration",
	"Locale":       "boost.invalid_locale",
}

// CreateBoostCheckoutSession starts a hosted one-time payment for boosting
// the caller's product and returns the redirect URL. It never touches the
// credit ledger; the boost is applied by ActivatePaidBoost once paid.
func (s *Service) CreateBoostCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	u, err := s.createCheckout(ctx, req)
	metrics.CheckoutSessionsTotal.WithLabelValues(metrics.Result(string(envelope.CodeOf(err)))).Inc()
	return u, err
}

func (s *Service) createCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", envelope.Wrap(envelope.CodeInvalidInput, checkoutFieldKeys[validation.FailedField(err)], err)
	}

	product, err := s.ownedProduct(ctx, req.CallerID, req.ProductID)
	if err != nil {
		return "", err
	}
	if product.HasActiveBoost(s.now()) {
		return "", envelope.New(envelope.CodeAlreadyExists, "boost.already_boosted")
	}

	price, err := s.repo.GetBoostPrice(ctx, req.DurationDays)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", envelope.Wrap(envelope.CodeNotFound, "boost.price_not_found", err)
		}
		return "", envelope.Wrap(envelope.CodeCreateFailed, "boost.checkout_failed", err)
	}
	if s.gateway == nil {
		return "", envelope.Wrap(envelope.CodeCreateFailed, "boost.checkout_unavailable", billing.ErrNotConfigured)
	}

	profile, err := s.repo.GetProfile(ctx, req.CallerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", envelope.Wrap(envelope.CodeNotFound, "boost.profile_not_found", err)
		}
		return "", envelope.Wrap(envelope.CodeCreateFailed, "boost.checkout_failed", err)
	}

	customerID := profile.StripeCustomerID
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(ctx, billing.CustomerInput{
			ProfileID: profile.ID,
			Email:     profile.Email,
			Name:      profile.Name(),
		})
		if err != nil {
			return "", s.checkoutError(err, req)
		}
		if err := s.repo.SetStripeCustomerID(ctx, profile.ID, customerID); err != nil {
			log.Warn().Err(err).Str("seller_id", profile.ID).Msg("persisting stripe customer id failed")
		}
	}

	locale := req.Locale
	if locale == "" {
		locale = i18n.FromContext(ctx)
	}
	currency := price.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, billing.CheckoutInput{
		CustomerID:   customerID,
		ProductID:    product.ID,
		SellerID:     profile.ID,
		ProductName:  fmt.Sprintf("%s: %s", i18n.T(locale, "boost.product_name", req.DurationDays), product.Title),
		DurationDays: req.DurationDays,
		AmountMinor:  price.PriceMinor,
		Currency:     currency,
		Locale:       locale,
		SuccessURL:   s.returnURL(locale, product.ID, "success"),
		CancelURL:    s.returnURL(locale, product.ID, "cancelled"),
	})
	if err != nil {
		return "", s.checkoutError(err, req)
	}
	return session.URL, nil
}

func (s *Service) checkoutError(err error, req CheckoutRequest) error {
	key := "boost.checkout_failed"
	if errors.Is(err, billing.ErrNotConfigured) {
		key = "boost.checkout_unavailable"
	}
	log.Error().Err(err).Str("seller_id", req.CallerID).Str("product_id", req.ProductID).Msg("boost checkout failed")
	return envelope.Wrap(envelope.CodeCreateFailed, key, err)
}

func (s *Service) returnURL(locale, productID, result string) string {
	q := url.Values{}
	q.Set("boost", result)
	q.Set("product", productID)
	return fmt.Sprintf("%s/%s/account/selling?%s", s.cfg.PublicBaseURL, locale, q.Encode())
}
