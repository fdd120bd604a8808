package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionPlan maps (account_type, tier) to plan benefits. BoostsIncluded is
// nullable; callers coalesce NULL to zero.
type SubscriptionPlan struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	AccountType    string    `gorm:"type:varchar(20);not null;default:'personal';index:idx_subscription_plans_lookup,priority:1" json:"account_type"`
	Tier           string    `gorm:"type:varchar(50);not null;index:idx_subscription_plans_lookup,priority:2" json:"tier"`
	BoostsIncluded *int      `gorm:"default:null" json:"boosts_included"`
	PriceMonthly   float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_monthly"`
	PriceYearly    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_yearly"`
	Currency       string    `gorm:"type:varchar(3);not null;default:'bgn'" json:"currency"`
	IsActive       bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
