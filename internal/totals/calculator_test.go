package totals

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settled-dev/settled/internal/logger"
	"github.com/settled-dev/settled/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func tx(amount string, state model.TransactionState) model.Transaction {
	return model.Transaction{
		GUID:             "guid-" + amount + "-" + string(state),
		AccountNameOwner: "chase_john",
		Amount:           dec(amount),
		TransactionState: state,
	}
}

func TestFromTransactions_GroupsByState(t *testing.T) {
	txs := []model.Transaction{
		tx("100.00", model.StateCleared),
		tx("50.00", model.StateOutstanding),
		tx("-20.00", model.StateFuture),
		tx("25.50", model.StateCleared),
	}

	sums := FromTransactions(txs)
	assert.True(t, sums[model.StateCleared].Equal(dec("125.50")))
	assert.True(t, sums[model.StateOutstanding].Equal(dec("50.00")))
	assert.True(t, sums[model.StateFuture].Equal(dec("-20.00")))
}

func TestFromTransactions_MissingStatesDefaultToZero(t *testing.T) {
	sums := FromTransactions([]model.Transaction{tx("10.00", model.StateCleared)})
	require.Len(t, sums, 3)
	assert.True(t, sums[model.StateFuture].IsZero())
	assert.True(t, sums[model.StateOutstanding].IsZero())
}

func TestGrandTotal_EqualsPlainSum(t *testing.T) {
	// Grouping must not change the total, whatever the order.
	sets := [][]model.Transaction{
		{tx("100.00", model.StateCleared), tx("50.00", model.StateOutstanding), tx("-20.00", model.StateFuture)},
		{tx("-20.00", model.StateFuture), tx("100.00", model.StateCleared), tx("50.00", model.StateOutstanding)},
		{tx("0.01", model.StateFuture), tx("0.02", model.StateFuture), tx("0.03", model.StateCleared)},
		nil,
	}

	for _, txs := range sets {
		plain := decimal.Zero
		for _, x := range txs {
			plain = plain.Add(x.Amount)
		}
		assert.True(t, GrandTotal(FromTransactions(txs)).Equal(plain.Round(2)),
			"grand total must equal the unfiltered sum")
	}
}

func TestChaseJohnScenario(t *testing.T) {
	txs := []model.Transaction{
		tx("100.00", model.StateCleared),
		tx("50.00", model.StateOutstanding),
		tx("-20.00", model.StateFuture),
	}

	sums := FromTransactions(txs)
	totals := fromStateSums(sums)

	assert.True(t, totals.Cleared.Equal(dec("100.00")))
	assert.True(t, totals.Outstanding.Equal(dec("50.00")))
	assert.True(t, totals.Future.Equal(dec("-20.00")))
	assert.True(t, totals.GrandTotal.Equal(dec("130.00")))
	assert.True(t, Validate(totals))
}

func TestValidate(t *testing.T) {
	good := model.Totals{
		Future:      dec("-20.00"),
		Outstanding: dec("50.00"),
		Cleared:     dec("100.00"),
		GrandTotal:  dec("130.00"),
	}
	assert.True(t, Validate(good))

	bad := good
	bad.GrandTotal = dec("131.02")
	assert.False(t, Validate(bad))
}

// listStore serves transactions from memory; no aggregate support, so the
// calculator must fall back to the in-memory path.
type listStore struct {
	txs []model.Transaction
	err error
}

func (s *listStore) TransactionsByAccount(ctx context.Context, nameOwner string) ([]model.Transaction, error) {
	return s.txs, s.err
}

// aggStore adds the aggregate fast path on top of listStore.
type aggStore struct {
	listStore
	aggErr error
}

func (s *aggStore) SumAmountByAccountAndState(ctx context.Context, nameOwner string) (map[model.TransactionState]decimal.Decimal, error) {
	if s.aggErr != nil {
		return nil, s.aggErr
	}
	return FromTransactions(s.txs), nil
}

func TestActiveByAccount_AggregateAndFallbackAgree(t *testing.T) {
	txs := []model.Transaction{
		tx("100.00", model.StateCleared),
		tx("50.00", model.StateOutstanding),
		tx("-20.00", model.StateFuture),
		tx("0.99", model.StateCleared),
	}

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	fallback := NewCalculator(&listStore{txs: txs}, log)
	fast := NewCalculator(&aggStore{listStore: listStore{txs: txs}}, log)

	ctx := context.Background()
	a := fallback.ActiveByAccount(ctx, "chase_john")
	b := fast.ActiveByAccount(ctx, "chase_john")

	assert.True(t, a.Future.Equal(b.Future))
	assert.True(t, a.Outstanding.Equal(b.Outstanding))
	assert.True(t, a.Cleared.Equal(b.Cleared))
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
}

func TestActiveByAccount_DegradesToZeroOnAggregateFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	calc := NewCalculator(&aggStore{aggErr: errors.New("disk exploded")}, log)

	got := calc.ActiveByAccount(context.Background(), "chase_john")
	assert.True(t, got.Future.IsZero())
	assert.True(t, got.Outstanding.IsZero())
	assert.True(t, got.Cleared.IsZero())
	assert.True(t, got.GrandTotal.IsZero())

	// The degradation must be observable, not silent.
	assert.Equal(t, int64(1), calc.Degradations())
	assert.Contains(t, buf.String(), "chase_john")
	assert.Contains(t, buf.String(), "zero totals")
}

func TestActiveByAccount_DegradesOnFallbackFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	calc := NewCalculator(&listStore{err: errors.New("query timeout")}, log)

	got := calc.ActiveByAccount(context.Background(), "chase_john")
	assert.True(t, got.GrandTotal.IsZero())
	assert.Equal(t, int64(1), calc.Degradations())
}

func TestGrandTotal_RoundsHalfUp(t *testing.T) {
	byState := map[model.TransactionState]decimal.Decimal{
		model.StateCleared: dec("0.005"),
	}
	assert.True(t, GrandTotal(byState).Equal(dec("0.01")))
}
