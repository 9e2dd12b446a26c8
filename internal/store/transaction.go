package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

const transactionColumns = `guid, account_name_owner, account_type, transaction_date,
	description, category, amount_cents, transaction_state, reoccurring, notes,
	date_added, date_updated`

func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var (
		t              model.Transaction
		txDate         string
		cents, reocc   int64
		added, updated string
	)
	err := row.Scan(&t.GUID, &t.AccountNameOwner, &t.AccountType, &txDate,
		&t.Description, &t.Category, &cents, &t.TransactionState, &reocc,
		&t.Notes, &added, &updated)
	if err != nil {
		return model.Transaction{}, err
	}

	t.TransactionDate, _ = time.Parse(dateFormat, txDate)
	t.Amount = decimalFromCents(cents)
	t.Reoccurring = reocc != 0
	t.DateAdded = parseStamp(added)
	t.DateUpdated = parseStamp(updated)
	return t, nil
}

// FindTransactionByGUID looks up a transaction by its immutable guid.
func (s *Store) FindTransactionByGUID(ctx context.Context, guid string) (model.Transaction, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE guid = ?`, guid)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, &errs.NotFoundError{Entity: "transaction", Key: guid}
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("finding transaction %q: %w", guid, err)
	}
	return t, nil
}

// InsertTransaction creates a new transaction row. A duplicate guid
// surfaces as a ConflictError; guids are never reused.
func (s *Store) InsertTransaction(ctx context.Context, t model.Transaction) error {
	cents, err := centsFromDecimal(t.Amount)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.GUID, t.AccountNameOwner, string(t.AccountType),
		t.TransactionDate.Format(dateFormat), t.Description, t.Category,
		cents, string(t.TransactionState), boolToInt(t.Reoccurring), t.Notes,
		t.DateAdded.Format(stampFormat), t.DateUpdated.Format(stampFormat))
	if err != nil {
		return mapConflict("transaction", t.GUID, err)
	}
	return nil
}

// UpdateTransactionState moves a transaction to a new lifecycle state and
// stamps date_updated. The guid and amount never change here.
func (s *Store) UpdateTransactionState(ctx context.Context, guid string, state model.TransactionState, now time.Time) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE transactions SET transaction_state = ?, date_updated = ?
		WHERE guid = ?`,
		string(state), now.Format(stampFormat), guid)
	if err != nil {
		return fmt.Errorf("updating state of %q: %w", guid, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "transaction", Key: guid}
	}
	return nil
}

// DeleteTransactionByGUID removes a single transaction.
func (s *Store) DeleteTransactionByGUID(ctx context.Context, guid string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM transactions WHERE guid = ?`, guid)
	if err != nil {
		return fmt.Errorf("deleting transaction %q: %w", guid, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "transaction", Key: guid}
	}
	return nil
}

// TransactionsByAccount returns an account's transactions, newest first.
func (s *Store) TransactionsByAccount(ctx context.Context, nameOwner string) ([]model.Transaction, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_name_owner = ?
		ORDER BY transaction_date DESC, guid`, nameOwner)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for %q: %w", nameOwner, err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SumAmountByAccountAndState is the aggregate fast path for account totals:
// one GROUP BY query instead of loading every transaction.
func (s *Store) SumAmountByAccountAndState(ctx context.Context, nameOwner string) (map[model.TransactionState]decimal.Decimal, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT transaction_state, COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE account_name_owner = ?
		GROUP BY transaction_state`, nameOwner)
	if err != nil {
		return nil, fmt.Errorf("summing transactions for %q: %w", nameOwner, err)
	}
	defer rows.Close()

	sums := make(map[model.TransactionState]decimal.Decimal, len(model.States))
	for _, state := range model.States {
		sums[state] = decimal.Zero
	}
	for rows.Next() {
		var (
			state string
			cents int64
		)
		if err := rows.Scan(&state, &cents); err != nil {
			return nil, fmt.Errorf("scanning state sum: %w", err)
		}
		sums[model.TransactionState(state)] = decimalFromCents(cents)
	}
	return sums, rows.Err()
}

// RepointCategory re-points every transaction referencing the from category
// to the to category. Already-repointed rows are untouched, so re-running
// is a no-op.
func (s *Store) RepointCategory(ctx context.Context, from, to string) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE category = ?`, to, from)
	if err != nil {
		return 0, fmt.Errorf("repointing category %q to %q: %w", from, to, err)
	}
	return res.RowsAffected()
}

// RepointDescription is RepointCategory for the description reference.
func (s *Store) RepointDescription(ctx context.Context, from, to string) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`UPDATE transactions SET description = ? WHERE description = ?`, to, from)
	if err != nil {
		return 0, fmt.Errorf("repointing description %q to %q: %w", from, to, err)
	}
	return res.RowsAffected()
}

// CountTransactionsByCategory recounts the category projection from the
// transactions themselves.
func (s *Store) CountTransactionsByCategory(ctx context.Context, name string) (int64, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category = ?`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting transactions in category %q: %w", name, err)
	}
	return n, nil
}

// CountTransactionsByDescription recounts the description projection.
func (s *Store) CountTransactionsByDescription(ctx context.Context, name string) (int64, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE description = ?`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting transactions with description %q: %w", name, err)
	}
	return n, nil
}
