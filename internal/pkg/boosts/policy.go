package boosts

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/internal/pkg/entitlements"
)

// IncludedBoosts returns the monthly boost credits of the active plan for
// (accountType, tier), falling back to the free plan of the same account
// type. nil means no plan data; callers treat it as zero.
func (s *Service) IncludedBoosts(ctx context.Context, accountType string, tier entitlements.Tier) *int {
	if n, ok := s.planBoosts(ctx, accountType, tier); ok {
		return n
	}
	if tier == entitlements.TierFree {
		return nil
	}
	n, _ := s.planBoosts(ctx, accountType, entitlements.TierFree)
	return n
}

// planBoosts reports ok=false when no plan row was found or the lookup failed.
func (s *Service) planBoosts(ctx context.Context, accountType string, tier entitlements.Tier) (*int, bool) {
	plan, err := s.repo.FindActivePlan(ctx, accountType, string(tier))
	if err == nil {
		return plan.BoostsIncluded, true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Str("account_type", accountType).Str("tier", string(tier)).Msg("subscription plan lookup failed")
	}
	return nil, false
}

func coalesce(n *int) int {
	if n == nil || *n < 0 {
		return 0
	}
	return *n
}
