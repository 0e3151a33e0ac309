package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Debits become
// expenses, credits income; the bank transaction type is the category.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
	chaseColType    = 4
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV.
func (p *ChaseParser) Parse(r io.Reader) ([]ledger.AppendParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]ledger.AppendParams, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseChaseRow(rec []string) (ledger.AppendParams, error) {
	date, err := time.Parse(chaseDateFormat, rec[chaseColDate])
	if err != nil {
		return ledger.AppendParams{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := ledger.ParseAmount(rec[chaseColAmount])
	if err != nil {
		return ledger.AppendParams{}, err
	}

	kind := model.KindIncome
	if amount.IsNegative() {
		kind = model.KindExpense
	}

	return ledger.AppendParams{
		Date:        date.Format("2006-01-02"),
		Kind:        kind,
		Category:    rec[chaseColType],
		Description: rec[chaseColDesc],
		Amount:      amount.Abs().String(),
	}, nil
}
