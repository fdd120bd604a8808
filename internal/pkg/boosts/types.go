package boosts

import "time"

// CreditBoostDays is the fixed duration of a credit-funded boost.
const CreditBoostDays = 7

// Ledger is a seller's boost credit triple.
type Ledger struct {
	Allocated int        `json:"boostsAllocated"`
	Remaining int        `json:"boostsRemaining"`
	ResetAt   *time.Time `json:"boostsResetAt,omitempty"`
}

// Status is the boost view of one listing for its seller.
type Status struct {
	IsBoosted       bool       `json:"isBoosted"`
	BoostExpiresAt  *time.Time `json:"boostExpiresAt"`
	BoostsRemaining int        `json:"boostsRemaining"`
	BoostsAllocated int        `json:"boostsAllocated"`
}

// CheckoutRequest asks for a paid boost checkout session.
type CheckoutRequest struct {
	CallerID     string
	ProductID    string `validate:"required,uuid"`
	DurationDays int    `validate:"oneof=7 14 30"`
	Locale       string `validate:"omitempty,oneof=en bg"`
}

// PaidBoost is a completed boost payment to apply to a listing.
type PaidBoost struct {
	SellerID     string
	ProductID    string
	DurationDays int
	AmountMinor  int64
	Currency     string
}

// Config carries the settings the boost flows need.
type Config struct {
	Currency      string
	PublicBaseURL string
}
