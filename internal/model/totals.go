package model

import "github.com/shopspring/decimal"

// Totals holds per-state aggregated sums for an account plus the grand
// total. Derived on demand; never persisted as source of truth.
type Totals struct {
	Future      decimal.Decimal
	Outstanding decimal.Decimal
	Cleared     decimal.Decimal
	GrandTotal  decimal.Decimal
}

// ZeroTotals returns a Totals with every component at zero. Used as the
// degraded result when an aggregate query fails.
func ZeroTotals() Totals {
	return Totals{
		Future:      decimal.Zero,
		Outstanding: decimal.Zero,
		Cleared:     decimal.Zero,
		GrandTotal:  decimal.Zero,
	}
}
