package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account as debit (checking, savings) or
// credit (credit card, loan).
type AccountType string

const (
	AccountTypeDebit  AccountType = "debit"
	AccountTypeCredit AccountType = "credit"
)

// Account is the owner of a set of transactions, keyed by NameOwner.
type Account struct {
	NameOwner    string // "name_owner", globally unique
	AccountType  AccountType
	ActiveStatus bool

	// Cached per-state totals. Derived from transactions; TotalsStale is set
	// whenever a transaction changes state and cleared on refresh.
	TotalFuture      decimal.Decimal
	TotalOutstanding decimal.Decimal
	TotalCleared     decimal.Decimal
	TotalsStale      bool

	DateAdded   time.Time
	DateUpdated time.Time
}

// ValidNameOwner reports whether s is in "name_owner" form: a non-empty
// name and owner joined by an underscore.
func ValidNameOwner(s string) bool {
	i := strings.LastIndex(s, "_")
	return i > 0 && i < len(s)-1
}
