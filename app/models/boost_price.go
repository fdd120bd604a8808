package models

import "time"

// AllowedBoostDurations are the paid boost durations in days.
var AllowedBoostDurations = []int{7, 14, 30}

// BoostPrice is the price of a paid boost for one duration. Amounts are stored
// in minor units (stotinki for BGN).
type BoostPrice struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DurationDays int       `gorm:"not null;uniqueIndex" json:"duration_days"`
	PriceMinor   int64     `gorm:"not null" json:"price_minor"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'bgn'" json:"currency"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Amount returns the price in major units.
func (p BoostPrice) Amount() float64 {
	return float64(p.PriceMinor) / 100
}

// IsAllowedBoostDuration reports whether days is a purchasable duration.
func IsAllowedBoostDuration(days int) bool {
	for _, d := range AllowedBoostDurations {
		if d == days {
			return true
		}
	}
	return false
}

// DefaultBoostPrices are seeded into an empty boost_prices table.
func DefaultBoostPrices(currency string) []BoostPrice {
	if currency == "" {
		currency = "bgn"
	}
	return []BoostPrice{
		{DurationDays: 7, PriceMinor: 299, Currency: currency, IsActive: true},
		{DurationDays: 14, PriceMinor: 500, Currency: currency, IsActive: true},
		{DurationDays: 30, PriceMinor: 999, Currency: currency, IsActive: true},
	}
}
