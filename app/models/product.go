package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ListingTypeStandard = "standard"
	ListingTypeBoosted  = "boosted"
)

// Product holds the listing columns the boost flows read and write.
type Product struct {
	ID             string     `gorm:"type:char(36);primaryKey" json:"id"`
	SellerID       string     `gorm:"type:char(36);not null;index" json:"seller_id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Price          float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	IsBoosted      bool       `gorm:"default:false;index:idx_products_boost,priority:1" json:"is_boosted"`
	BoostExpiresAt *time.Time `gorm:"type:timestamp;default:null;index:idx_products_boost,priority:2" json:"boost_expires_at,omitempty"`
	ListingType    string     `gorm:"type:varchar(20);not null;default:'standard'" json:"listing_type"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.ListingType == "" {
		p.ListingType = ListingTypeStandard
	}
	return nil
}

// HasActiveBoost reports whether the boost flag is set and has not expired at now.
func (p *Product) HasActiveBoost(now time.Time) bool {
	return p.IsBoosted && p.BoostExpiresAt != nil && p.BoostExpiresAt.After(now)
}
