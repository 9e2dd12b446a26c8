// Package payments turns a payment request into its double-entry pair of
// transactions plus the linking payment record.
package payments

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/store"
)

// BillPayCategory is the reserved category stamped onto every
// payment-generated transaction.
const BillPayCategory = "bill_pay"

// Processor creates and deletes payments.
type Processor struct {
	store *store.Store
	log   zerolog.Logger
}

// NewProcessor creates a payment Processor.
func NewProcessor(st *store.Store, log zerolog.Logger) *Processor {
	return &Processor{store: st, log: log}
}

// Validate checks a payment's structural constraints. Negative amounts are
// legal input; the sign convention in Insert handles them.
func Validate(p model.Payment) []errs.Violation {
	var violations []errs.Violation

	if p.AccountNameOwner == "" {
		violations = append(violations, errs.Violation{
			Field:   "accountNameOwner",
			Message: "must not be blank",
		})
	} else if !model.ValidNameOwner(p.AccountNameOwner) {
		violations = append(violations, errs.Violation{
			Field:   "accountNameOwner",
			Message: "must be in name_owner form",
		})
	}

	if p.TransactionDate.IsZero() {
		violations = append(violations, errs.Violation{
			Field:   "transactionDate",
			Message: "must be set",
		})
	}

	violations = append(violations, ledger.ValidateAmountScale("amount", p.Amount)...)

	return violations
}

// Insert validates the payment, resolves the configured payment account,
// synthesizes the credit/debit transaction pair, and persists all three
// records in one store transaction. Either everything lands or nothing
// does.
func (p *Processor) Insert(ctx context.Context, payment model.Payment) (model.Payment, error) {
	if violations := Validate(payment); len(violations) > 0 {
		return model.Payment{}, &errs.ValidationError{Entity: "payment", Violations: violations}
	}

	param, err := p.store.FindParameter(ctx, model.ParamPaymentAccount)
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		return model.Payment{}, &errs.ConfigurationError{Parameter: model.ParamPaymentAccount}
	}
	if err != nil {
		return model.Payment{}, err
	}
	paymentAccount := param.Value

	// Both accounts must exist before any write.
	if _, err := p.store.FindAccount(ctx, payment.AccountNameOwner); err != nil {
		return model.Payment{}, err
	}
	if _, err := p.store.FindAccount(ctx, paymentAccount); err != nil {
		return model.Payment{}, err
	}

	now := time.Now()
	credit := model.Transaction{
		AccountNameOwner: payment.AccountNameOwner,
		TransactionDate:  payment.TransactionDate,
		Description:      "payment",
		Category:         BillPayCategory,
		Amount:           applySignConvention(payment.Amount),
		TransactionState: model.StateOutstanding,
		Reoccurring:      false,
	}
	debit := model.Transaction{
		AccountNameOwner: paymentAccount,
		TransactionDate:  payment.TransactionDate,
		Description:      "payment",
		Category:         BillPayCategory,
		Amount:           applySignConvention(payment.Amount),
		TransactionState: model.StateOutstanding,
		Reoccurring:      false,
	}

	err = p.store.WithTx(ctx, func(tx *store.Store) error {
		svc := ledger.NewService(tx)

		creditTx, err := svc.Insert(ctx, credit)
		if err != nil {
			return err
		}
		debitTx, err := svc.Insert(ctx, debit)
		if err != nil {
			return err
		}

		payment.GUIDSource = debitTx.GUID
		payment.GUIDDestination = creditTx.GUID
		payment.DateAdded = now
		payment.DateUpdated = now
		return tx.InsertPayment(ctx, &payment)
	})
	if err != nil {
		return model.Payment{}, err
	}

	p.log.Info().
		Int64("payment_id", payment.PaymentID).
		Str("account", payment.AccountNameOwner).
		Str("amount", payment.Amount.StringFixed(2)).
		Msg("payment inserted")
	return payment, nil
}

// DeleteByID removes only the payment record. The two linked transactions
// are not cascade-deleted; that asymmetry is long-standing behavior that
// callers depend on.
func (p *Processor) DeleteByID(ctx context.Context, paymentID int64) error {
	return p.store.DeletePayment(ctx, paymentID)
}

// applySignConvention fixes the stored amount at creation: positive
// business amounts are negated, everything else is stored as-is. The
// convention is applied independently to each side of the pair.
func applySignConvention(amount decimal.Decimal) decimal.Decimal {
	if amount.IsPositive() {
		return amount.Neg()
	}
	return amount
}
