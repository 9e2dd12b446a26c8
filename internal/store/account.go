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

const (
	dateFormat  = "2006-01-02"
	stampFormat = time.RFC3339Nano
)

func parseStamp(s string) time.Time {
	t, err := time.Parse(stampFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// FindAccount looks up an account by its nameOwner key.
func (s *Store) FindAccount(ctx context.Context, nameOwner string) (model.Account, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT name_owner, account_type, active_status,
		       total_future_cents, total_outstanding_cents, total_cleared_cents,
		       totals_stale, date_added, date_updated
		FROM accounts WHERE name_owner = ?`, nameOwner)

	var (
		a                             model.Account
		active, stale                 int64
		future, outstanding, cleared  int64
		added, updated                string
	)
	err := row.Scan(&a.NameOwner, &a.AccountType, &active,
		&future, &outstanding, &cleared, &stale, &added, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, &errs.NotFoundError{Entity: "account", Key: nameOwner}
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("finding account %q: %w", nameOwner, err)
	}

	a.ActiveStatus = active != 0
	a.TotalsStale = stale != 0
	a.TotalFuture = decimalFromCents(future)
	a.TotalOutstanding = decimalFromCents(outstanding)
	a.TotalCleared = decimalFromCents(cleared)
	a.DateAdded = parseStamp(added)
	a.DateUpdated = parseStamp(updated)
	return a, nil
}

// InsertAccount creates a new account. A duplicate nameOwner surfaces as a
// ConflictError.
func (s *Store) InsertAccount(ctx context.Context, a model.Account) error {
	future, err := centsFromDecimal(a.TotalFuture)
	if err != nil {
		return err
	}
	outstanding, err := centsFromDecimal(a.TotalOutstanding)
	if err != nil {
		return err
	}
	cleared, err := centsFromDecimal(a.TotalCleared)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO accounts (name_owner, account_type, active_status,
		    total_future_cents, total_outstanding_cents, total_cleared_cents,
		    totals_stale, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.NameOwner, string(a.AccountType), boolToInt(a.ActiveStatus),
		future, outstanding, cleared, boolToInt(a.TotalsStale),
		a.DateAdded.Format(stampFormat), a.DateUpdated.Format(stampFormat))
	if err != nil {
		return mapConflict("account", a.NameOwner, err)
	}
	return nil
}

// Accounts returns every account ordered by nameOwner.
func (s *Store) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT name_owner FROM accounts ORDER BY name_owner`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	accounts := make([]model.Account, 0, len(names))
	for _, name := range names {
		a, err := s.FindAccount(ctx, name)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// MarkAccountTotalsStale flags an account's cached totals as needing a
// recompute. Called after any transaction state change.
func (s *Store) MarkAccountTotalsStale(ctx context.Context, nameOwner string, now time.Time) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE accounts SET totals_stale = 1, date_updated = ?
		WHERE name_owner = ?`,
		now.Format(stampFormat), nameOwner)
	if err != nil {
		return fmt.Errorf("marking totals stale for %q: %w", nameOwner, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "account", Key: nameOwner}
	}
	return nil
}

// UpdateAccountTotals persists freshly computed per-state totals and clears
// the stale flag.
func (s *Store) UpdateAccountTotals(ctx context.Context, nameOwner string, t model.Totals, now time.Time) error {
	future, err := centsFromDecimal(t.Future)
	if err != nil {
		return err
	}
	outstanding, err := centsFromDecimal(t.Outstanding)
	if err != nil {
		return err
	}
	cleared, err := centsFromDecimal(t.Cleared)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE accounts
		SET total_future_cents = ?, total_outstanding_cents = ?,
		    total_cleared_cents = ?, totals_stale = 0, date_updated = ?
		WHERE name_owner = ?`,
		future, outstanding, cleared, now.Format(stampFormat), nameOwner)
	if err != nil {
		return fmt.Errorf("updating totals for %q: %w", nameOwner, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errs.NotFoundError{Entity: "account", Key: nameOwner}
	}
	return nil
}
