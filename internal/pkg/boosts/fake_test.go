package boosts

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/cache"
)

type planKey struct{ accountType, tier string }

type fakeRepo struct {
	mu sync.Mutex

	plans         map[planKey]*models.SubscriptionPlan
	planErr       map[planKey]error
	profiles      map[string]*models.Profile
	subscriptions map[string]*models.Subscription
	products      map[string]*models.Product
	prices        map[int]*models.BoostPrice
	boosts        []*models.ListingBoost

	writes       int
	productReads int

	updateLedgerErr  error
	setRemainingErrs []error
	markBoostedErr   error
	createBoostErr   error
	setCustomerErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		plans:         map[planKey]*models.SubscriptionPlan{},
		planErr:       map[planKey]error{},
		profiles:      map[string]*models.Profile{},
		subscriptions: map[string]*models.Subscription{},
		products:      map[string]*models.Product{},
		prices:        map[int]*models.BoostPrice{},
	}
}

func intPtr(n int) *int { return &n }

func (f *fakeRepo) addPlan(accountType, tier string, boosts *int) {
	f.plans[planKey{accountType, tier}] = &models.SubscriptionPlan{AccountType: accountType, Tier: tier, BoostsIncluded: boosts, IsActive: true}
}

func (f *fakeRepo) FindActivePlan(_ context.Context, accountType, tier string) (*models.SubscriptionPlan, error) {
	k := planKey{accountType, tier}
	if err := f.planErr[k]; err != nil {
		return nil, err
	}
	p, ok := f.plans[k]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) LatestActiveSubscription(_ context.Context, sellerID string) (*models.Subscription, error) {
	s, ok := f.subscriptions[sellerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) UpdateLedger(_ context.Context, sellerID string, l Ledger) error {
	if f.updateLedgerErr != nil {
		return f.updateLedgerErr
	}
	f.writes++
	p := f.profiles[sellerID]
	p.BoostsAllocated = l.Allocated
	p.BoostsRemaining = l.Remaining
	p.BoostsResetAt = l.ResetAt
	return nil
}

func (f *fakeRepo) SetBoostsRemaining(_ context.Context, sellerID string, remaining int) error {
	if len(f.setRemainingErrs) > 0 {
		err := f.setRemainingErrs[0]
		f.setRemainingErrs = f.setRemainingErrs[1:]
		if err != nil {
			return err
		}
	}
	f.writes++
	f.profiles[sellerID].BoostsRemaining = remaining
	return nil
}

func (f *fakeRepo) SetStripeCustomerID(_ context.Context, profileID, customerID string) error {
	if f.setCustomerErr != nil {
		return f.setCustomerErr
	}
	f.writes++
	f.profiles[profileID].StripeCustomerID = customerID
	return nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id string) (*models.Product, error) {
	f.productReads++
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) MarkProductBoosted(_ context.Context, productID string, expiresAt time.Time) error {
	if f.markBoostedErr != nil {
		return f.markBoostedErr
	}
	f.writes++
	p := f.products[productID]
	p.IsBoosted = true
	p.BoostExpiresAt = &expiresAt
	p.ListingType = models.ListingTypeBoosted
	return nil
}

func (f *fakeRepo) CreateListingBoost(_ context.Context, b *models.ListingBoost) error {
	if f.createBoostErr != nil {
		return f.createBoostErr
	}
	f.writes++
	f.boosts = append(f.boosts, b)
	return nil
}

func (f *fakeRepo) GetBoostPrice(_ context.Context, durationDays int) (*models.BoostPrice, error) {
	p, ok := f.prices[durationDays]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) ExpireBoosts(_ context.Context, now time.Time) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.IsBoosted && (p.BoostExpiresAt == nil || !p.BoostExpiresAt.After(now)) {
			p.IsBoosted = false
			p.BoostExpiresAt = nil
			p.ListingType = models.ListingTypeStandard
			out = append(out, models.Product{ID: p.ID, SellerID: p.SellerID})
		}
	}
	return out, nil
}

type recordingCache struct {
	tags []string
	err  error

	entries map[string][]byte
	tagged  map[string][]string
	getErr  error
}

func (c *recordingCache) Invalidate(_ context.Context, tags ...string) error {
	c.tags = append(c.tags, tags...)
	if c.err != nil {
		return c.err
	}
	for _, tag := range tags {
		for _, key := range c.tagged[tag] {
			delete(c.entries, key)
		}
		delete(c.tagged, tag)
	}
	return nil
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	b, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (c *recordingCache) Remember(_ context.Context, key string, value interface{}, _ time.Duration, tags ...string) error {
	if c.entries == nil {
		c.entries = map[string][]byte{}
		c.tagged = map[string][]string{}
	}
	b, _ := value.([]byte)
	c.entries[key] = b
	for _, tag := range tags {
		c.tagged[tag] = append(c.tagged[tag], key)
	}
	return nil
}

type fakeGateway struct {
	customerErr error
	sessionErr  error
	customers   int
	lastInput   billing.CheckoutInput
}

func (g *fakeGateway) CreateCustomer(_ context.Context, in billing.CustomerInput) (string, error) {
	if g.customerErr != nil {
		return "", g.customerErr
	}
	g.customers++
	return "cus_" + in.ProfileID[:4], nil
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, in billing.CheckoutInput) (*billing.CheckoutSession, error) {
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	g.lastInput = in
	return &billing.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil
}

var errDB = errors.New("db down")
