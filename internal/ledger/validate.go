package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// ValidateTransaction checks a transaction's structural constraints before
// any mutation. It returns every violation found, not just the first.
func ValidateTransaction(t model.Transaction) []errs.Violation {
	var violations []errs.Violation

	if t.AccountNameOwner == "" {
		violations = append(violations, errs.Violation{
			Field:   "accountNameOwner",
			Message: "must not be blank",
		})
	} else if !model.ValidNameOwner(t.AccountNameOwner) {
		violations = append(violations, errs.Violation{
			Field:   "accountNameOwner",
			Message: "must be in name_owner form",
		})
	}

	if t.TransactionDate.IsZero() {
		violations = append(violations, errs.Violation{
			Field:   "transactionDate",
			Message: "must be set",
		})
	}

	violations = append(violations, ValidateAmountScale("amount", t.Amount)...)

	if t.TransactionState != "" && !model.ValidState(t.TransactionState) {
		violations = append(violations, errs.Violation{
			Field:   "transactionState",
			Message: "must be one of future, outstanding, cleared",
		})
	}

	return violations
}

// ValidateAmountScale rejects amounts with more than 2 decimal places.
func ValidateAmountScale(field string, d decimal.Decimal) []errs.Violation {
	hundred := decimal.NewFromInt(100)
	if !d.Mul(hundred).Equal(d.Mul(hundred).Floor()) {
		return []errs.Violation{{
			Field:   field,
			Message: "must have no more than 2 decimal places",
		}}
	}
	return nil
}
