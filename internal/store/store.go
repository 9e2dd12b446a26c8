// Package store is the SQLite-backed repository for the ledger. Amounts are
// persisted as integer cents so SQL aggregation stays exact.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/errs"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so every store method
// works inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides CRUD and aggregate access to the ledger database.
type Store struct {
	q  queryer
	db *sql.DB // nil when tx-bound
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema. WAL mode and a busy timeout keep concurrent callers from
// tripping over each other.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{q: db, db: db}, nil
}

// Close closes the underlying database. No-op on a tx-bound store.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WithTx runs fn against a transaction-bound Store. It commits when fn
// returns nil and rolls back otherwise. Calling WithTx on an already
// tx-bound store joins the existing transaction.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Store{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// mapConflict converts a SQLite uniqueness violation into a ConflictError;
// everything else passes through.
func mapConflict(entity, key string, err error) error {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrConstraint {
		return &errs.ConflictError{Entity: entity, Key: key, Err: err}
	}
	return err
}

// Amounts cross the SQL boundary as integer cents.

func centsFromDecimal(d decimal.Decimal) (int64, error) {
	scaled := d.Mul(decimal.NewFromInt(100))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than 2 decimal places", d)
	}
	return scaled.IntPart(), nil
}

func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
