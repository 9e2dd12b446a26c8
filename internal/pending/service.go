// Package pending manages the staging area for transactions awaiting
// classification. Staged records have no state machine: they exist until
// promoted or discarded.
package pending

import (
	"context"
	"time"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/store"
)

// Service provides staging CRUD.
type Service struct {
	store *store.Store
}

// NewService creates a pending transaction Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Insert stages a transaction and stamps DateAdded.
func (s *Service) Insert(ctx context.Context, pt model.PendingTransaction) (model.PendingTransaction, error) {
	var violations []errs.Violation
	if pt.AccountNameOwner == "" {
		violations = append(violations, errs.Violation{
			Field:   "accountNameOwner",
			Message: "must not be blank",
		})
	}
	if pt.TransactionDate.IsZero() {
		violations = append(violations, errs.Violation{
			Field:   "transactionDate",
			Message: "must be set",
		})
	}
	violations = append(violations, ledger.ValidateAmountScale("amount", pt.Amount)...)
	if len(violations) > 0 {
		return model.PendingTransaction{}, &errs.ValidationError{Entity: "pending transaction", Violations: violations}
	}

	if pt.ReviewStatus == "" {
		pt.ReviewStatus = "pending"
	}
	pt.DateAdded = time.Now()
	if err := s.store.InsertPendingTransaction(ctx, &pt); err != nil {
		return model.PendingTransaction{}, err
	}
	return pt, nil
}

// All lists the staging area, oldest first.
func (s *Service) All(ctx context.Context) ([]model.PendingTransaction, error) {
	return s.store.PendingTransactions(ctx)
}

// DeleteByID discards a single staged record.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.store.DeletePendingTransaction(ctx, id)
}

// DeleteAll clears the staging area after a bulk reclassification.
func (s *Service) DeleteAll(ctx context.Context) error {
	return s.store.DeleteAllPendingTransactions(ctx)
}
