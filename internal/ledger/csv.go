package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header of the tally entry format.
const Header = "date,kind,category,description,amount"

const (
	numFields = 5
	colDate   = 0
	colKind   = 1
	colCat    = 2
	colDesc   = 3
	colAmount = 4
)

// ReadParams reads append requests from a tally CSV. Amounts are kept as
// text so that a bad value surfaces as ErrInvalidAmount when appended.
func ReadParams(r io.Reader) ([]AppendParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entries CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	if got := strings.Join(records[0], ","); got != Header {
		return nil, fmt.Errorf("row 1: header %q, want %q", got, Header)
	}

	params := make([]AppendParams, 0, len(records)-1)
	for _, rec := range records[1:] {
		params = append(params, UnmarshalParams(rec))
	}
	return params, nil
}

// WriteEntries writes entries as a tally CSV (including header). The amount
// column holds the magnitude, so the output reads back into the same entries.
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date
	row[colKind] = string(e.Kind)
	row[colCat] = e.Category
	row[colDesc] = e.Description
	row[colAmount] = e.Magnitude.String()
	return row
}

// UnmarshalParams converts a CSV row to AppendParams.
func UnmarshalParams(record []string) AppendParams {
	return AppendParams{
		Date:        record[colDate],
		Kind:        model.Kind(record[colKind]),
		Category:    record[colCat],
		Description: record[colDesc],
		Amount:      record[colAmount],
	}
}
