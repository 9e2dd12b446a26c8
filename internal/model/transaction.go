package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState represents the lifecycle state of a transaction.
type TransactionState string

const (
	StateFuture      TransactionState = "future"
	StateOutstanding TransactionState = "outstanding"
	StateCleared     TransactionState = "cleared"
)

// States lists every legal transaction state.
var States = []TransactionState{StateFuture, StateOutstanding, StateCleared}

// ValidState reports whether s is one of the enumerated states.
func ValidState(s TransactionState) bool {
	switch s {
	case StateFuture, StateOutstanding, StateCleared:
		return true
	}
	return false
}

// Transaction is a single ledger entry owned by an account.
type Transaction struct {
	GUID             string
	AccountNameOwner string
	AccountType      AccountType
	TransactionDate  time.Time
	Description      string
	Category         string
	Amount           decimal.Decimal // signed, 2-decimal scale
	TransactionState TransactionState
	Reoccurring      bool
	Notes            string
	DateAdded        time.Time
	DateUpdated      time.Time
}
