package store

import (
	"context"
	"fmt"
	"time"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// InsertPendingTransaction stages an unclassified transaction and fills in
// the generated id.
func (s *Store) InsertPendingTransaction(ctx context.Context, pt *model.PendingTransaction) error {
	cents, err := centsFromDecimal(pt.Amount)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO pending_transactions (account_name_owner, transaction_date,
		    description, amount_cents, review_status, date_added)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pt.AccountNameOwner, pt.TransactionDate.Format(dateFormat),
		pt.Description, cents, pt.ReviewStatus, pt.DateAdded.Format(stampFormat))
	if err != nil {
		return fmt.Errorf("inserting pending transaction: %w", err)
	}

	pt.PendingTransactionID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading pending transaction id: %w", err)
	}
	return nil
}

// PendingTransactions lists the staging area, oldest first.
func (s *Store) PendingTransactions(ctx context.Context) ([]model.PendingTransaction, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT pending_transaction_id, account_name_owner, transaction_date,
		       description, amount_cents, review_status, date_added
		FROM pending_transactions
		ORDER BY pending_transaction_id`)
	if err != nil {
		return nil, fmt.Errorf("listing pending transactions: %w", err)
	}
	defer rows.Close()

	var pts []model.PendingTransaction
	for rows.Next() {
		var (
			pt     model.PendingTransaction
			txDate string
			cents  int64
			added  string
		)
		if err := rows.Scan(&pt.PendingTransactionID, &pt.AccountNameOwner,
			&txDate, &pt.Description, &cents, &pt.ReviewStatus, &added); err != nil {
			return nil, fmt.Errorf("scanning pending transaction: %w", err)
		}
		pt.TransactionDate, _ = time.Parse(dateFormat, txDate)
		pt.Amount = decimalFromCents(cents)
		pt.DateAdded = parseStamp(added)
		pts = append(pts, pt)
	}
	return pts, rows.Err()
}

// DeletePendingTransaction removes a single staged record.
func (s *Store) DeletePendingTransaction(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM pending_transactions WHERE pending_transaction_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pending transaction %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "pending transaction", Key: fmt.Sprint(id)}
	}
	return nil
}

// DeleteAllPendingTransactions clears the staging area.
func (s *Store) DeleteAllPendingTransactions(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM pending_transactions`); err != nil {
		return fmt.Errorf("clearing pending transactions: %w", err)
	}
	return nil
}
