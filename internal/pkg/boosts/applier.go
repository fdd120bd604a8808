package boosts

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/metrics"
)

// UseSubscriptionBoost spends one monthly credit to boost the caller's
// product for CreditBoostDays and returns the remaining credits.
//
// The steps are not transactional. When marking the product fails the spent
// credit is restored best-effort; if that restore also fails the ledger stays
// one credit short.
func (s *Service) UseSubscriptionBoost(ctx context.Context, callerID, productID string) (int, error) {
	product, err := s.ownedProduct(ctx, callerID, productID)
	if err != nil {
		return 0, err
	}
	now := s.now()
	if product.HasActiveBoost(now) {
		return 0, envelope.New(envelope.CodeAlreadyExists, "boost.already_boosted")
	}

	ledger, profile, err := s.syncLedger(ctx, callerID)
	if err != nil {
		return 0, err
	}
	if ledger.Remaining <= 0 {
		return 0, envelope.New(envelope.CodeInvalidStatus, "boost.none_remaining")
	}

	remaining := ledger.Remaining - 1
	if err := s.repo.SetBoostsRemaining(ctx, callerID, remaining); err != nil {
		return 0, envelope.Wrap(envelope.CodeUpdateFailed, "", err)
	}

	expiresAt := now.Add(CreditBoostDays * 24 * time.Hour)
	if err := s.repo.MarkProductBoosted(ctx, productID, expiresAt); err != nil {
		if rerr := s.repo.SetBoostsRemaining(ctx, callerID, ledger.Remaining); rerr != nil {
			metrics.CompensationFailuresTotal.Inc()
			log.Error().Err(rerr).
				Str("seller_id", callerID).
				Str("product_id", productID).
				Int("expected_remaining", ledger.Remaining).
				Msg("boost credit restore failed, ledger is one credit short")
		}
		return 0, envelope.Wrap(envelope.CodeUpdateFailed, "", err)
	}

	audit := &models.ListingBoost{
		ProductID:    productID,
		SellerID:     callerID,
		PricePaid:    0,
		DurationDays: CreditBoostDays,
		Currency:     s.cfg.Currency,
		StartsAt:     now,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := s.repo.CreateListingBoost(ctx, audit); err != nil {
		log.Error().Err(err).Str("seller_id", callerID).Str("product_id", productID).Msg("listing boost audit write failed")
	}

	metrics.BoostsAppliedTotal.WithLabelValues("credit").Inc()
	s.invalidate(ctx, productID, productTags(product, profile.Username))

	log.Info().Str("seller_id", callerID).Str("product_id", productID).Int("boosts_remaining", remaining).Msg("subscription boost applied")
	return remaining, nil
}
