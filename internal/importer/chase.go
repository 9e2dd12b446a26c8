package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/model"
)

const chaseDateFormat = "01/02/2006"

// ChaseParser parses Chase bank CSV exports. Expected columns:
// Details, Posting Date, Description, Amount, Type, Balance, Check or Slip #.
type ChaseParser struct{}

// Format returns the registry key for Chase exports.
func (p *ChaseParser) Format() string {
	return "chase"
}

// Parse reads a Chase CSV export and stages each row against
// accountNameOwner. The header row is skipped when present.
func (p *ChaseParser) Parse(r io.Reader, accountNameOwner string) ([]model.PendingTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var pending []model.PendingTransaction
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading chase csv: %w", err)
		}
		line++

		if len(record) < 4 {
			return nil, fmt.Errorf("chase csv line %d: expected at least 4 fields, got %d", line, len(record))
		}

		// Header row from Chase exports.
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "Details") {
			continue
		}

		date, err := time.Parse(chaseDateFormat, strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("chase csv line %d: parsing date %q: %w", line, record[1], err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("chase csv line %d: parsing amount %q: %w", line, record[3], err)
		}

		pending = append(pending, model.PendingTransaction{
			AccountNameOwner: accountNameOwner,
			TransactionDate:  date,
			Description:      strings.ToLower(strings.TrimSpace(record[2])),
			Amount:           amount,
		})
	}

	return pending, nil
}
