package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is the free-text income/expense marker an entry was recorded with.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Entry is one immutable accounting record.
type Entry struct {
	Seq         int    // 1-based append position
	Date        string // YYYY-MM-DD, stored verbatim
	Kind        Kind
	Category    string
	Description string
	Magnitude   decimal.Decimal // as entered
	Expense     bool            // Kind matched an expense marker at append time
	Amount      decimal.Decimal // signed: -Magnitude when Expense, +Magnitude otherwise
}

// String renders "date | kind [category] - description: amount".
func (e Entry) String() string {
	return fmt.Sprintf("%s | %s [%s] - %s: %s", e.Date, e.Kind, e.Category, e.Description, e.Amount.StringFixed(2))
}

// CategoryTotal is the signed sum of all entries sharing a category.
type CategoryTotal struct {
	Category string
	Count    int
	Amount   decimal.Decimal
}

// Summary splits the balance into its income and expense sides.
type Summary struct {
	Count   int
	Income  decimal.Decimal // sum of non-expense amounts
	Expense decimal.Decimal // sum of expense magnitudes, positive
	Balance decimal.Decimal
}
