package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/settled-dev/settled/internal/model"
)

func TestValidateTransaction(t *testing.T) {
	valid := model.Transaction{
		AccountNameOwner: "chase_john",
		TransactionDate:  date(2026, 8, 15),
		Amount:           dec("-10.00"),
		TransactionState: model.StateOutstanding,
	}

	tests := []struct {
		name    string
		mutate  func(*model.Transaction)
		field   string
		wantLen int
	}{
		{"valid", func(tx *model.Transaction) {}, "", 0},
		{"blank account", func(tx *model.Transaction) { tx.AccountNameOwner = "" }, "accountNameOwner", 1},
		{"bad account form", func(tx *model.Transaction) { tx.AccountNameOwner = "nounderscore" }, "accountNameOwner", 1},
		{"zero date", func(tx *model.Transaction) { tx.TransactionDate = model.Transaction{}.TransactionDate }, "transactionDate", 1},
		{"sub-cent amount", func(tx *model.Transaction) { tx.Amount = dec("0.001") }, "amount", 1},
		{"bogus state", func(tx *model.Transaction) { tx.TransactionState = "pending" }, "transactionState", 1},
		{"blank state is allowed", func(tx *model.Transaction) { tx.TransactionState = "" }, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			violations := ValidateTransaction(tx)
			assert.Len(t, violations, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.field, violations[0].Field)
			}
		})
	}
}

func TestValidateTransaction_CollectsAllViolations(t *testing.T) {
	violations := ValidateTransaction(model.Transaction{
		Amount:           dec("0.001"),
		TransactionState: "nope",
	})
	assert.Len(t, violations, 4, "blank owner, zero date, scale, state")
}

func TestValidateAmountScale(t *testing.T) {
	assert.Empty(t, ValidateAmountScale("amount", dec("10.00")))
	assert.Empty(t, ValidateAmountScale("amount", dec("-0.01")))
	assert.Empty(t, ValidateAmountScale("amount", dec("0")))
	assert.Len(t, ValidateAmountScale("amount", dec("0.005")), 1)
	assert.Len(t, ValidateAmountScale("amount", dec("-0.005")), 1)
}
