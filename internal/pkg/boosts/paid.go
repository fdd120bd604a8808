package boosts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/metrics"
)

// ActivatePaidBoost applies a boost that was paid through checkout.
func (s *Service) ActivatePaidBoost(ctx context.Context, p PaidBoost) error {
	if p.SellerID == "" || p.ProductID == "" || p.DurationDays <= 0 {
		return envelope.Wrapf(envelope.CodeInvalidInput, "", "incomplete paid boost %+v", p)
	}

	product, err := s.repo.GetProduct(ctx, p.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return envelope.Wrap(envelope.CodeNotFound, "boost.product_not_found", err)
		}
		return fmt.Errorf("load product %s: %w", p.ProductID, err)
	}
	if product.SellerID != p.SellerID {
		return envelope.New(envelope.CodeNotAuthorized, "boost.not_owner")
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(p.DurationDays) * 24 * time.Hour)
	currency := p.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}

	if err := s.repo.MarkProductBoosted(ctx, p.ProductID, expiresAt); err != nil {
		return envelope.Wrap(envelope.CodeUpdateFailed, "", err)
	}

	audit := &models.ListingBoost{
		ProductID:    p.ProductID,
		SellerID:     p.SellerID,
		PricePaid:    float64(p.AmountMinor) / 100,
		DurationDays: p.DurationDays,
		Currency:     currency,
		StartsAt:     now,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := s.repo.CreateListingBoost(ctx, audit); err != nil {
		log.Error().Err(err).Str("seller_id", p.SellerID).Str("product_id", p.ProductID).Msg("listing boost audit write failed")
	}

	username := ""
	if profile, err := s.repo.GetProfile(ctx, p.SellerID); err == nil {
		username = profile.Username
	}
	metrics.BoostsAppliedTotal.WithLabelValues("paid").Inc()
	s.invalidate(ctx, p.ProductID, productTags(product, username))

	log.Info().
		Str("seller_id", p.SellerID).
		Str("product_id", p.ProductID).
		Int("duration_days", p.DurationDays).
		Int64("amount_minor", p.AmountMinor).
		Msg("paid boost activated")
	return nil
}

// ExpireBoosts clears the boost of every listing whose boost has run out and
// returns how many listings changed.
func (s *Service) ExpireBoosts(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireBoosts(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire boosts: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	seen := map[string]struct{}{}
	tags := []string{"products:list", "products:type:featured", "products:type:boosted", "products:type:newest"}
	for _, p := range expired {
		tags = append(tags, "product:"+p.ID)
		if _, ok := seen[p.SellerID]; !ok {
			seen[p.SellerID] = struct{}{}
			tags = append(tags, "user-products-"+p.SellerID, "profile-"+p.SellerID)
		}
	}
	s.invalidate(ctx, "", tags)

	n := int64(len(expired))
	metrics.BoostsExpiredTotal.Add(float64(n))
	log.Info().Int64("count", n).Msg("expired listing boosts")
	return n, nil
}

// RunExpirySweeper calls ExpireBoosts every interval until ctx is done.
func (s *Service) RunExpirySweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.ExpireBoosts(ctx); err != nil {
				log.Error().Err(err).Msg("boost expiry sweep failed")
			}
		}
	}
}
