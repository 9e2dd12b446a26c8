package model

import "time"

// Category labels transactions by name. Count is a maintained projection of
// how many transactions reference the category, not a source of truth.
type Category struct {
	Name         string // unique
	ActiveStatus bool
	Count        int64
	DateAdded    time.Time
	DateUpdated  time.Time
}

// Description is a normalized transaction description, same lifecycle as
// Category: created on first use, merged and soft-deleted administratively.
type Description struct {
	Name         string // unique
	ActiveStatus bool
	Count        int64
	DateAdded    time.Time
	DateUpdated  time.Time
}
