package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// ValidationError describes a single broken ledger invariant.
type ValidationError struct {
	Seq         int // 0 for ledger-wide checks
	Description string
}

func (e ValidationError) Error() string {
	if e.Seq == 0 {
		return "ledger: " + e.Description
	}
	return fmt.Sprintf("entry %d: %s", e.Seq, e.Description)
}

// Verify checks that every entry's sign agrees with its kind, that entries
// are numbered in append order, and that the running balance equals the sum
// of signed amounts.
func (l *Ledger) Verify() []ValidationError {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return verifyEntries(l.entries, l.balance)
}

func verifyEntries(entries []model.Entry, balance decimal.Decimal) []ValidationError {
	var errs []ValidationError

	sum := decimal.Zero
	for i, e := range entries {
		if e.Seq != i+1 {
			errs = append(errs, ValidationError{
				Seq:         e.Seq,
				Description: fmt.Sprintf("out of order at position %d", i+1),
			})
		}

		want := e.Magnitude
		if e.Expense {
			want = e.Magnitude.Neg()
		}
		if !e.Amount.Equal(want) {
			errs = append(errs, ValidationError{
				Seq:         e.Seq,
				Description: fmt.Sprintf("signed amount %s does not match kind %q and magnitude %s", e.Amount, e.Kind, e.Magnitude),
			})
		}

		sum = sum.Add(e.Amount)
	}

	if !sum.Equal(balance) {
		errs = append(errs, ValidationError{
			Description: fmt.Sprintf("balance (%s) != sum of entries (%s)", balance.StringFixed(2), sum.StringFixed(2)),
		})
	}
	return errs
}
