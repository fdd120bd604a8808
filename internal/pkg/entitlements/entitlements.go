package entitlements

import (
	"strings"
)

type Tier string

const (
	TierFree         Tier = "free"
	TierStarter      Tier = "starter"
	TierBasic        Tier = "basic"
	TierPremium      Tier = "premium"
	TierProfessional Tier = "professional"
	TierBusiness     Tier = "business"
	TierEnterprise   Tier = "enterprise"
)

// NormalizeTier trims and lower-cases a stored tier or subscription plan
// type. Empty values become free; every other value is kept so that plans
// outside the known list still resolve to their own plan row.
func NormalizeTier(raw string) Tier {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return TierFree
	}
	return Tier(t)
}

// EffectiveTier prefers the plan type of an active subscription over the tier
// stored on the profile.
func EffectiveTier(activePlanType, profileTier string) Tier {
	if strings.TrimSpace(activePlanType) != "" {
		return NormalizeTier(activePlanType)
	}
	return NormalizeTier(profileTier)
}
