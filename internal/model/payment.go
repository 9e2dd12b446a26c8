package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a bill payment and links the double-entry pair of
// transactions it generated. Deleting a payment does not delete the
// linked transactions.
type Payment struct {
	PaymentID        int64
	AccountNameOwner string // account the bill is paid against
	Amount           decimal.Decimal
	TransactionDate  time.Time
	GUIDSource       string // debit transaction on the payment account
	GUIDDestination  string // credit transaction on AccountNameOwner
	DateAdded        time.Time
	DateUpdated      time.Time
}
