// Package ledger provides business logic for transactions: insertion,
// lifecycle state transitions, and deletion.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/store"
)

// Service provides transaction operations against a store. A Service is
// cheap to construct, so callers inside a store transaction build one over
// the tx-bound store.
type Service struct {
	store *store.Store
}

// NewService creates a transaction Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Insert validates and persists a new transaction. The owning account must
// exist; the category and description entities are created on first use and
// their counts bumped. A blank guid is stamped with a fresh uuid; a blank
// state defaults to outstanding, or future for forward-dated recurring
// transactions.
func (s *Service) Insert(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if violations := ValidateTransaction(t); len(violations) > 0 {
		return model.Transaction{}, &errs.ValidationError{Entity: "transaction", Violations: violations}
	}

	account, err := s.store.FindAccount(ctx, t.AccountNameOwner)
	if err != nil {
		return model.Transaction{}, err
	}

	now := time.Now()
	if t.GUID == "" {
		t.GUID = uuid.NewString()
	}
	if t.AccountType == "" {
		t.AccountType = account.AccountType
	}
	if t.TransactionState == "" {
		if t.Reoccurring && t.TransactionDate.After(now) {
			t.TransactionState = model.StateFuture
		} else {
			t.TransactionState = model.StateOutstanding
		}
	}
	t.DateAdded = now
	t.DateUpdated = now

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := ensureCategory(ctx, tx, t.Category, now); err != nil {
			return err
		}
		if err := ensureDescription(ctx, tx, t.Description, now); err != nil {
			return err
		}
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return err
		}
		return tx.MarkAccountTotalsStale(ctx, t.AccountNameOwner, now)
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// UpdateState moves a transaction to a new lifecycle state. The state
// machine is deliberately loose: any enumerated state is reachable from any
// other. The owning account's cached totals are invalidated; the totals
// calculator recomputes them on demand.
func (s *Service) UpdateState(ctx context.Context, guid string, newState model.TransactionState) (model.Transaction, error) {
	if !model.ValidState(newState) {
		return model.Transaction{}, &errs.ValidationError{
			Entity: "transaction",
			Violations: []errs.Violation{{
				Field:   "transactionState",
				Message: "must be one of future, outstanding, cleared",
			}},
		}
	}

	t, err := s.store.FindTransactionByGUID(ctx, guid)
	if err != nil {
		return model.Transaction{}, err
	}

	now := time.Now()
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.UpdateTransactionState(ctx, guid, newState, now); err != nil {
			return err
		}
		return tx.MarkAccountTotalsStale(ctx, t.AccountNameOwner, now)
	})
	if err != nil {
		return model.Transaction{}, err
	}

	t.TransactionState = newState
	t.DateUpdated = now
	return t, nil
}

// DeleteByGUID removes a transaction and decrements its category and
// description counts.
func (s *Service) DeleteByGUID(ctx context.Context, guid string) error {
	t, err := s.store.FindTransactionByGUID(ctx, guid)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.DeleteTransactionByGUID(ctx, guid); err != nil {
			return err
		}
		if err := decrementCategory(ctx, tx, t.Category, now); err != nil {
			return err
		}
		if err := decrementDescription(ctx, tx, t.Description, now); err != nil {
			return err
		}
		return tx.MarkAccountTotalsStale(ctx, t.AccountNameOwner, now)
	})
}

// FindByGUID looks up a transaction by guid.
func (s *Service) FindByGUID(ctx context.Context, guid string) (model.Transaction, error) {
	return s.store.FindTransactionByGUID(ctx, guid)
}

func ensureCategory(ctx context.Context, st *store.Store, name string, now time.Time) error {
	if name == "" {
		return nil
	}
	c, err := st.FindCategory(ctx, name)
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		c = model.Category{Name: name, ActiveStatus: true, DateAdded: now, DateUpdated: now}
		if err := st.InsertCategory(ctx, c); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	c.Count++
	c.DateUpdated = now
	return st.UpdateCategory(ctx, c)
}

func ensureDescription(ctx context.Context, st *store.Store, name string, now time.Time) error {
	if name == "" {
		return nil
	}
	d, err := st.FindDescription(ctx, name)
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		d = model.Description{Name: name, ActiveStatus: true, DateAdded: now, DateUpdated: now}
		if err := st.InsertDescription(ctx, d); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	d.Count++
	d.DateUpdated = now
	return st.UpdateDescription(ctx, d)
}

func decrementCategory(ctx context.Context, st *store.Store, name string, now time.Time) error {
	if name == "" {
		return nil
	}
	c, err := st.FindCategory(ctx, name)
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.Count > 0 {
		c.Count--
	}
	c.DateUpdated = now
	return st.UpdateCategory(ctx, c)
}

func decrementDescription(ctx context.Context, st *store.Store, name string, now time.Time) error {
	if name == "" {
		return nil
	}
	d, err := st.FindDescription(ctx, name)
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if d.Count > 0 {
		d.Count--
	}
	d.DateUpdated = now
	return st.UpdateDescription(ctx, d)
}
