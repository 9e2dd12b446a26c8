package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// InsertPayment creates a payment row and fills in the generated PaymentID.
func (s *Store) InsertPayment(ctx context.Context, p *model.Payment) error {
	cents, err := centsFromDecimal(p.Amount)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO payments (account_name_owner, amount_cents, transaction_date,
		    guid_source, guid_destination, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.AccountNameOwner, cents, p.TransactionDate.Format(dateFormat),
		p.GUIDSource, p.GUIDDestination,
		p.DateAdded.Format(stampFormat), p.DateUpdated.Format(stampFormat))
	if err != nil {
		return mapConflict("payment", p.AccountNameOwner, err)
	}

	p.PaymentID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading payment id: %w", err)
	}
	return nil
}

// FindPayment looks up a payment by id.
func (s *Store) FindPayment(ctx context.Context, paymentID int64) (model.Payment, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT payment_id, account_name_owner, amount_cents, transaction_date,
		       guid_source, guid_destination, date_added, date_updated
		FROM payments WHERE payment_id = ?`, paymentID)

	var (
		p              model.Payment
		cents          int64
		txDate         string
		added, updated string
	)
	err := row.Scan(&p.PaymentID, &p.AccountNameOwner, &cents, &txDate,
		&p.GUIDSource, &p.GUIDDestination, &added, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, &errs.NotFoundError{Entity: "payment", Key: fmt.Sprint(paymentID)}
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("finding payment %d: %w", paymentID, err)
	}

	p.Amount = decimalFromCents(cents)
	p.TransactionDate, _ = time.Parse(dateFormat, txDate)
	p.DateAdded = parseStamp(added)
	p.DateUpdated = parseStamp(updated)
	return p, nil
}

// DeletePayment removes only the payment row. The two linked transactions
// are intentionally left in place.
func (s *Store) DeletePayment(ctx context.Context, paymentID int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = ?`, paymentID)
	if err != nil {
		return fmt.Errorf("deleting payment %d: %w", paymentID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "payment", Key: fmt.Sprint(paymentID)}
	}
	return nil
}
