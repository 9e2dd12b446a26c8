// Package totals derives per-state sums and grand totals for an account.
// Totals are computed, never treated as a stored source of truth.
package totals

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// Store is the read surface the calculator needs.
type Store interface {
	TransactionsByAccount(ctx context.Context, nameOwner string) ([]model.Transaction, error)
}

// Aggregator is the optional fast path: a store-level GROUP BY instead of
// loading every transaction. Both paths must produce identical results.
type Aggregator interface {
	SumAmountByAccountAndState(ctx context.Context, nameOwner string) (map[model.TransactionState]decimal.Decimal, error)
}

// TotalsWriter persists refreshed cached totals onto the account.
type TotalsWriter interface {
	UpdateAccountTotals(ctx context.Context, nameOwner string, t model.Totals, now time.Time) error
}

// FromTransactions groups transactions by state and sums amounts with exact
// decimal arithmetic. Every state is present in the result, zero when empty.
func FromTransactions(txs []model.Transaction) map[model.TransactionState]decimal.Decimal {
	sums := make(map[model.TransactionState]decimal.Decimal, len(model.States))
	for _, state := range model.States {
		sums[state] = decimal.Zero
	}
	for _, t := range txs {
		sums[t.TransactionState] = sums[t.TransactionState].Add(t.Amount)
	}
	return sums
}

// GrandTotal sums all state values and rounds half-up to 2 decimal places.
func GrandTotal(byState map[model.TransactionState]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range byState {
		total = total.Add(v)
	}
	return total.Round(2)
}

// Validate checks that the grand total equals the sum of the three state
// components within one cent of rounding tolerance.
func Validate(t model.Totals) bool {
	sum := t.Future.Add(t.Outstanding).Add(t.Cleared).Round(2)
	return t.GrandTotal.Sub(sum).Abs().LessThanOrEqual(decimal.New(1, -2))
}

func fromStateSums(byState map[model.TransactionState]decimal.Decimal) model.Totals {
	return model.Totals{
		Future:      byState[model.StateFuture],
		Outstanding: byState[model.StateOutstanding],
		Cleared:     byState[model.StateCleared],
		GrandTotal:  GrandTotal(byState),
	}
}

// Calculator computes account totals against a store.
type Calculator struct {
	store       Store
	log         zerolog.Logger
	degradation atomic.Int64
}

// NewCalculator creates a Calculator. The logger is the observable side
// channel for aggregation failures.
func NewCalculator(store Store, log zerolog.Logger) *Calculator {
	return &Calculator{store: store, log: log}
}

// ActiveByAccount returns the per-state totals for one account. When the
// store supports aggregate queries that path is used; otherwise the
// transactions are loaded and summed in memory. A failed query degrades to
// zero totals rather than failing the read path; the degradation is logged
// and counted so operators can see it.
func (c *Calculator) ActiveByAccount(ctx context.Context, nameOwner string) model.Totals {
	if agg, ok := c.store.(Aggregator); ok {
		sums, err := agg.SumAmountByAccountAndState(ctx, nameOwner)
		if err != nil {
			return c.degrade(nameOwner, err)
		}
		return fromStateSums(sums)
	}

	txs, err := c.store.TransactionsByAccount(ctx, nameOwner)
	if err != nil {
		return c.degrade(nameOwner, err)
	}
	return fromStateSums(FromTransactions(txs))
}

// Refresh recomputes an account's totals and persists them as the cached
// copy, clearing the stale flag. Requires a store that can write totals.
func (c *Calculator) Refresh(ctx context.Context, nameOwner string, now time.Time) error {
	writer, ok := c.store.(TotalsWriter)
	if !ok {
		return nil
	}
	t := c.ActiveByAccount(ctx, nameOwner)
	return writer.UpdateAccountTotals(ctx, nameOwner, t, now)
}

// Degradations reports how many totals queries have failed and been
// answered with zero totals since startup.
func (c *Calculator) Degradations() int64 {
	return c.degradation.Load()
}

func (c *Calculator) degrade(nameOwner string, err error) model.Totals {
	c.degradation.Add(1)
	aggErr := &errs.AggregationError{AccountNameOwner: nameOwner, Err: err}
	c.log.Warn().
		Err(aggErr).
		Str("account", nameOwner).
		Int64("degradations", c.degradation.Load()).
		Msg("totals query failed; returning zero totals")
	return model.ZeroTotals()
}
