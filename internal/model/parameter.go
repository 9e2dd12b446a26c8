package model

import "time"

// ParamPaymentAccount names the parameter holding the account that funds
// bill payments.
const ParamPaymentAccount = "payment_account"

// Parameter is a named system setting stored alongside the ledger.
type Parameter struct {
	Name         string // unique
	Value        string
	ActiveStatus bool
	DateAdded    time.Time
	DateUpdated  time.Time
}
