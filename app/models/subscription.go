package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

const (
	BillingPeriodMonthly = "monthly"
	BillingPeriodYearly  = "yearly"
)

// Subscription mirrors a seller's Stripe subscription. PlanType is the tier the
// subscription grants and takes precedence over Profile.Tier while active.
type Subscription struct {
	ID                   string     `gorm:"type:char(36);primaryKey" json:"id"`
	SellerID             string     `gorm:"type:char(36);not null;index:idx_subscriptions_seller_status,priority:1" json:"seller_id"`
	PlanType             string     `gorm:"type:varchar(50);not null" json:"plan_type"`
	Status               string     `gorm:"type:varchar(32);not null;default:'active';index:idx_subscriptions_seller_status,priority:2" json:"status"`
	BillingPeriod        string     `gorm:"type:varchar(16);not null;default:'monthly'" json:"billing_period"`
	PricePaid            float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price_paid"`
	StartsAt             *time.Time `gorm:"type:timestamp;default:null" json:"starts_at,omitempty"`
	ExpiresAt            time.Time  `gorm:"type:timestamp;not null" json:"expires_at"`
	AutoRenew            bool       `gorm:"default:true" json:"auto_renew"`
	StripeCustomerID     string     `gorm:"type:varchar(191);default:''" json:"-"`
	StripeSubscriptionID string     `gorm:"type:varchar(191);default:'';index" json:"-"`
	CreatedAt            time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
