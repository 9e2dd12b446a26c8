package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingTransaction is a staged, unclassified transaction awaiting
// promotion to a real Transaction or discard. No state machine applies.
type PendingTransaction struct {
	PendingTransactionID int64
	AccountNameOwner     string
	TransactionDate      time.Time
	Description          string
	Amount               decimal.Decimal
	ReviewStatus         string
	DateAdded            time.Time
}
