// Package boosts implements listing boosts: the monthly credit ledger, the
// credit-funded boost, paid boost checkout and activation, and expiry.
package boosts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/cache"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/metrics"
)

// Service runs the boost flows against a Repository.
type Service struct {
	repo    Repository
	cache   cache.Store
	gateway billing.Gateway
	cfg     Config
	now     func() time.Time
}

// NewService creates a boost service. gateway may be nil when payments are
// not configured; checkout then fails with create_failed.
func NewService(repo Repository, inv cache.Store, gateway billing.Gateway, cfg Config) *Service {
	if inv == nil {
		inv = cache.Nop{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "bgn"
	}
	return &Service{repo: repo, cache: inv, gateway: gateway, cfg: cfg, now: time.Now}
}

// NewServiceFromDB creates a boost service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, inv cache.Store, gateway billing.Gateway, cfg Config) *Service {
	return NewService(NewRepository(db), inv, gateway, cfg)
}

// productCacheTTL bounds how long a read-only view may show a product row.
const productCacheTTL = 5 * time.Minute

// ownedProduct validates the ids and loads a product the caller owns from
// the database.
func (s *Service) ownedProduct(ctx context.Context, callerID, productID string) (*models.Product, error) {
	return s.ownedProductFrom(ctx, callerID, productID, s.repo.GetProduct)
}

// cachedOwnedProduct is ownedProduct for read-only paths: the product row is
// served from the cache and invalidated by the product:<id> tag.
func (s *Service) cachedOwnedProduct(ctx context.Context, callerID, productID string) (*models.Product, error) {
	return s.ownedProductFrom(ctx, callerID, productID, s.cachedProduct)
}

func (s *Service) ownedProductFrom(ctx context.Context, callerID, productID string, load func(context.Context, string) (*models.Product, error)) (*models.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, envelope.Wrap(envelope.CodeInvalidInput, "boost.invalid_product", err)
	}
	if callerID == "" {
		return nil, envelope.New(envelope.CodeNotAuthenticated, "")
	}

	product, err := load(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, envelope.Wrap(envelope.CodeNotFound, "boost.product_not_found", err)
		}
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}
	if product.SellerID != callerID {
		return nil, envelope.New(envelope.CodeNotAuthorized, "boost.not_owner")
	}
	return product, nil
}

func productCacheKey(productID string) string {
	return "boosts:product:" + productID
}

func (s *Service) cachedProduct(ctx context.Context, productID string) (*models.Product, error) {
	key := productCacheKey(productID)
	b, err := s.cache.Get(ctx, key)
	if err == nil {
		var p models.Product
		if err := json.Unmarshal(b, &p); err == nil {
			return &p, nil
		}
		log.Warn().Str("key", key).Msg("discarding unreadable cached product")
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("product cache read failed")
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(product); err == nil {
		tags := []string{"product:" + product.ID, "user-products-" + product.SellerID}
		if err := s.cache.Remember(ctx, key, b, productCacheTTL, tags...); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("product cache write failed")
		}
	}
	return product, nil
}

// productTags are the cache tags of every view that renders the product.
func productTags(product *models.Product, username string) []string {
	tags := []string{
		"product:" + product.ID,
		"products:list",
		"user-products-" + product.SellerID,
		"products:type:featured",
		"products:type:boosted",
		"products:type:newest",
	}
	if username != "" {
		tags = append(tags, "profile-"+username)
	}
	return append(tags, "profile-"+product.SellerID)
}

// invalidate drops cached views. Failures are logged only.
func (s *Service) invalidate(ctx context.Context, productID string, tags []string) {
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		metrics.CacheInvalidationErrorsTotal.Inc()
		log.Warn().Err(err).Str("product_id", productID).Strs("tags", tags).Msg("cache invalidation failed")
	}
}
