package models

import (
	"time"

	"gorm.io/gorm"
)

// ListingBoost is the append-only audit record of a boost grant. Credit-funded
// boosts are stored with PricePaid 0.
type ListingBoost struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID    string    `gorm:"type:char(36);not null;index" json:"product_id"`
	SellerID     string    `gorm:"type:char(36);not null;index" json:"seller_id"`
	PricePaid    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_paid"`
	DurationDays int       `gorm:"not null;default:7" json:"duration_days"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'bgn'" json:"currency"`
	StartsAt     time.Time `gorm:"type:timestamp;not null" json:"starts_at"`
	ExpiresAt    time.Time `gorm:"type:timestamp;not null" json:"expires_at"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *ListingBoost) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
