package boosts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
)

func checkoutFixture() *fakeRepo {
	repo := spendFixture()
	for _, p := range models.DefaultBoostPrices("bgn") {
		price := p
		repo.prices[p.DurationDays] = &price
	}
	return repo
}

func TestCreateBoostCheckoutSession(t *testing.T) {
	repo := checkoutFixture()
	gw := &fakeGateway{}
	ctx := i18n.WithLocale(context.Background(), i18n.BG)

	u, err := newTestService(repo, &recordingCache{}, gw).CreateBoostCheckoutSession(ctx, CheckoutRequest{
		CallerID: sellerID, ProductID: productID, DurationDays: 14,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_1", u)

	assert.Equal(t, 1, gw.customers)
	assert.Equal(t, "cus_5f0c", repo.profiles[sellerID].StripeCustomerID)

	in := gw.lastInput
	assert.Equal(t, "cus_5f0c", in.CustomerID)
	assert.Equal(t, int64(500), in.AmountMinor)
	assert.Equal(t, "bgn", in.Currency)
	assert.Equal(t, 14, in.DurationDays)
	assert.Equal(t, "bg", in.Locale)
	assert.Equal(t, "Промоция на обява (14 дни): Vintage camera", in.ProductName)
	assert.Equal(t, "https://treido.eu/bg/account/selling?boost=success&product="+productID, in.SuccessURL)
	assert.Equal(t, "https://treido.eu/bg/account/selling?boost=cancelled&product="+productID, in.CancelURL)

	assert.Equal(t, 3, repo.profiles[sellerID].BoostsRemaining)
	assert.False(t, repo.products[productID].IsBoosted)
}

func TestCreateBoostCheckoutSessionReusesCustomer(t *testing.T) {
	repo := checkoutFixture()
	repo.profiles[sellerID].StripeCustomerID = "cus_existing"
	gw := &fakeGateway{}

	_, err := newTestService(repo, &recordingCache{}, gw).CreateBoostCheckoutSession(context.Background(), CheckoutRequest{
		CallerID: sellerID, ProductID: productID, DurationDays: 7, Locale: "en",
	})
	require.NoError(t, err)
	assert.Zero(t, gw.customers)
	assert.Equal(t, "cus_existing", gw.lastInput.CustomerID)
	assert.Equal(t, int64(299), gw.lastInput.AmountMinor)
}

func TestCreateBoostCheckoutSessionContinuesWhenCustomerPersistFails(t *testing.T) {
	repo := checkoutFixture()
	repo.setCustomerErr = errDB
	gw := &fakeGateway{}

	u, err := newTestService(repo, &recordingCache{}, gw).CreateBoostCheckoutSession(context.Background(), CheckoutRequest{
		CallerID: sellerID, ProductID: productID, DurationDays: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u)
	assert.Equal(t, "cus_5f0c", gw.lastInput.CustomerID)
}

func TestCreateBoostCheckoutSessionErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckoutRequest
		prepare func(*fakeRepo, *fakeGateway)
		noGW    bool
		want    *envelope.Error
	}{
		{name: "bad duration", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 10}, want: envelope.New(envelope.CodeInvalidInput, "boost.invalid_duration")},
		{name: "bad locale", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 7, Locale: "de"}, want: envelope.New(envelope.CodeInvalidInput, "boost.invalid_locale")},
		{name: "bad product id", req: CheckoutRequest{CallerID: sellerID, ProductID: "abc", DurationDays: 7}, want: envelope.New(envelope.CodeInvalidInput, "boost.invalid_product")},
		{name: "not owner", req: CheckoutRequest{CallerID: otherID, ProductID: productID, DurationDays: 7}, want: envelope.New(envelope.CodeNotAuthorized, "")},
		{
			name: "already boosted", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 7},
			prepare: func(r *fakeRepo, _ *fakeGateway) {
				r.products[productID].IsBoosted = true
				r.products[productID].BoostExpiresAt = timePtr(fixedNow.Add(time.Hour))
			},
			want: envelope.New(envelope.CodeAlreadyExists, ""),
		},
		{
			name: "price missing", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 14},
			prepare: func(r *fakeRepo, _ *fakeGateway) { delete(r.prices, 14) },
			want:    envelope.New(envelope.CodeNotFound, "boost.price_not_found"),
		},
		{name: "stripe not configured", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 7}, noGW: true, want: envelope.New(envelope.CodeCreateFailed, "boost.checkout_unavailable")},
		{
			name: "customer creation fails", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 7},
			prepare: func(_ *fakeRepo, g *fakeGateway) { g.customerErr = errors.New("stripe down") },
			want:    envelope.New(envelope.CodeCreateFailed, "boost.checkout_failed"),
		},
		{
			name: "session creation fails", req: CheckoutRequest{CallerID: sellerID, ProductID: productID, DurationDays: 7},
			prepare: func(_ *fakeRepo, g *fakeGateway) { g.sessionErr = billing.ErrNotConfigured },
			want:    envelope.New(envelope.CodeCreateFailed, "boost.checkout_unavailable"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := checkoutFixture()
			gw := &fakeGateway{}
			if tt.prepare != nil {
				tt.prepare(repo, gw)
			}
			var svc *Service
			if tt.noGW {
				svc = newTestService(repo, &recordingCache{}, nil)
			} else {
				svc = newTestService(repo, &recordingCache{}, gw)
			}

			u, err := svc.CreateBoostCheckoutSession(context.Background(), tt.req)
			assert.Empty(t, u)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 3, repo.profiles[sellerID].BoostsRemaining)
		})
	}
}
