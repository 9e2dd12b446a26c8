package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chaseSample = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/15/2024,STARBUCKS STORE 1234,-5.75,DEBIT_CARD,1024.50,
CREDIT,01/16/2024,PAYROLL ACME CORP,2500.00,ACH_CREDIT,3524.50,
`

func TestChaseParserParsesRows(t *testing.T) {
	p := &ChaseParser{}

	pending, err := p.Parse(strings.NewReader(chaseSample), "chase_john")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	assert.Equal(t, "chase_john", pending[0].AccountNameOwner)
	assert.Equal(t, "starbucks store 1234", pending[0].Description)
	assert.True(t, pending[0].Amount.Equal(decimal.RequireFromString("-5.75")))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), pending[0].TransactionDate)

	assert.Equal(t, "payroll acme corp", pending[1].Description)
	assert.True(t, pending[1].Amount.Equal(decimal.RequireFromString("2500.00")))
}

func TestChaseParserNoHeader(t *testing.T) {
	p := &ChaseParser{}

	raw := "DEBIT,02/01/2024,GROCERY OUTLET,-42.10,DEBIT_CARD,900.00,\n"
	pending, err := p.Parse(strings.NewReader(raw), "chase_john")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "grocery outlet", pending[0].Description)
}

func TestChaseParserBadDate(t *testing.T) {
	p := &ChaseParser{}

	raw := "DEBIT,2024-02-01,GROCERY OUTLET,-42.10,DEBIT_CARD,900.00,\n"
	_, err := p.Parse(strings.NewReader(raw), "chase_john")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParserBadAmount(t *testing.T) {
	p := &ChaseParser{}

	raw := "DEBIT,02/01/2024,GROCERY OUTLET,abc,DEBIT_CARD,900.00,\n"
	_, err := p.Parse(strings.NewReader(raw), "chase_john")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestChaseParserShortRow(t *testing.T) {
	p := &ChaseParser{}

	_, err := p.Parse(strings.NewReader("DEBIT,02/01/2024\n"), "chase_john")
	require.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"))
	assert.Nil(t, r.Get("unknown"))
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}
