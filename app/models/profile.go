package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AccountTypePersonal = "personal"
	AccountTypeBusiness = "business"
)

// Profile is a marketplace account. Sellers carry their boost ledger
// (allocated, remaining, reset-at) directly on the row.
type Profile struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`
	Username         string     `gorm:"type:varchar(100);index" json:"username"`
	DisplayName      string     `gorm:"type:varchar(150);default:''" json:"display_name"`
	Email            string     `gorm:"type:varchar(200);default:''" json:"-"`
	AccountType      string     `gorm:"type:varchar(20);not null;default:'personal'" json:"account_type" validate:"oneof=personal business"`
	Tier             *string    `gorm:"type:varchar(50);default:null" json:"tier"`
	BoostsAllocated  int        `gorm:"not null;default:0" json:"boosts_allocated"`
	BoostsRemaining  int        `gorm:"not null;default:0" json:"boosts_remaining"`
	BoostsResetAt    *time.Time `gorm:"type:timestamp;default:null" json:"boosts_reset_at,omitempty"`
	StripeCustomerID string     `gorm:"type:varchar(191);default:''" json:"-"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.AccountType == "" {
		p.AccountType = AccountTypePersonal
	}
	return nil
}

// TierOrEmpty returns the stored tier or "" when unset.
func (p *Profile) TierOrEmpty() string {
	if p == nil || p.Tier == nil {
		return ""
	}
	return *p.Tier
}

// Name returns the best human-readable name for the profile.
func (p *Profile) Name() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Username != "":
		return p.Username
	default:
		return p.ID
	}
}
