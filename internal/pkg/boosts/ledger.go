package boosts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/entitlements"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/metrics"
)

// SyncLedger aligns the seller's ledger with the current plan and the monthly
// reset schedule, writing only when a value changes.
func (s *Service) SyncLedger(ctx context.Context, sellerID string) (Ledger, error) {
	l, _, err := s.syncLedger(ctx, sellerID)
	return l, err
}

func (s *Service) syncLedger(ctx context.Context, sellerID string) (Ledger, *models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Ledger{}, nil, envelope.Wrap(envelope.CodeNotFound, "boost.profile_not_found", err)
		}
		return Ledger{}, nil, fmt.Errorf("load profile %s: %w", sellerID, err)
	}

	current := Ledger{
		Allocated: profile.BoostsAllocated,
		Remaining: profile.BoostsRemaining,
		ResetAt:   profile.BoostsResetAt,
	}

	tier := entitlements.EffectiveTier(s.activePlanType(ctx, sellerID), profile.TierOrEmpty())
	included := coalesce(s.IncludedBoosts(ctx, profile.AccountType, tier))

	next, reason := reconcile(current, included, s.now())
	if reason == "" {
		return current, profile, nil
	}

	if err := s.repo.UpdateLedger(ctx, sellerID, next); err != nil {
		log.Error().Err(err).
			Str("seller_id", sellerID).
			Str("reason", reason).
			Msg("boost ledger correction failed")
		return current, profile, nil
	}
	metrics.LedgerCorrectionsTotal.WithLabelValues(reason).Inc()

	profile.BoostsAllocated = next.Allocated
	profile.BoostsRemaining = next.Remaining
	profile.BoostsResetAt = next.ResetAt
	return next, profile, nil
}

func (s *Service) activePlanType(ctx context.Context, sellerID string) string {
	sub, err := s.repo.LatestActiveSubscription(ctx, sellerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("seller_id", sellerID).Msg("active subscription lookup failed")
		}
		return ""
	}
	return sub.PlanType
}

// reconcile computes the corrected ledger. reason is "" when nothing changes,
// otherwise one of reset, clamp or reallocate.
func reconcile(current Ledger, included int, now time.Time) (Ledger, string) {
	next := Ledger{Allocated: included, Remaining: current.Remaining, ResetAt: current.ResetAt}

	resetDue := current.ResetAt == nil || current.ResetAt.IsZero() || !current.ResetAt.After(now)
	if resetDue {
		next.Remaining = included
		r := nextMonthUTC(now)
		next.ResetAt = &r
	} else if next.Remaining > included {
		next.Remaining = included
	}

	switch {
	case resetDue:
		return next, "reset"
	case next.Remaining != current.Remaining:
		return next, "clamp"
	case next.Allocated != current.Allocated:
		return next, "reallocate"
	default:
		return current, ""
	}
}

// nextMonthUTC returns the 1st of the month after now at 00:00 UTC.
func nextMonthUTC(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
