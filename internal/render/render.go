// Package render formats ledger data for the terminal.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// NoEntries is printed when a listing is empty.
const NoEntries = "No entries."

// NoCategoryEntries is printed when a category filter matches nothing.
const NoCategoryEntries = "No entries in this category."

// Printer writes ledger output with an optional currency suffix.
type Printer struct {
	w        io.Writer
	currency string
}

// NewPrinter creates a Printer. An empty currency omits the suffix.
func NewPrinter(w io.Writer, currency string) *Printer {
	return &Printer{w: w, currency: currency}
}

// Money formats an amount to two decimals plus currency.
func (p *Printer) Money(d decimal.Decimal) string {
	if p.currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + p.currency
}

// Line formats one entry as "date | kind [category] - description: amount".
func (p *Printer) Line(e model.Entry) string {
	if p.currency == "" {
		return e.String()
	}
	return e.String() + " " + p.currency
}

// Entries prints one line per entry, or empty when there are none.
func (p *Printer) Entries(entries []model.Entry, empty string) {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, empty)
		return
	}
	for _, e := range entries {
		fmt.Fprintln(p.w, p.Line(e))
	}
}

// Balance prints the running balance.
func (p *Printer) Balance(d decimal.Decimal) {
	fmt.Fprintf(p.w, "Balance: %s\n", p.Money(d))
}

// Summary prints income, expense and balance totals.
func (p *Printer) Summary(s model.Summary) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Entries:\t%d\t\n", s.Count)
	fmt.Fprintf(tw, "Income:\t%s\t\n", p.Money(s.Income))
	fmt.Fprintf(tw, "Expense:\t%s\t\n", p.Money(s.Expense))
	fmt.Fprintf(tw, "Balance:\t%s\t\n", p.Money(s.Balance))
	_ = tw.Flush()
}

// CategoryTotals prints one row per category.
func (p *Printer) CategoryTotals(totals []model.CategoryTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(p.w, NoEntries)
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tENTRIES\tTOTAL")
	for _, ct := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ct.Category, ct.Count, p.Money(ct.Amount))
	}
	_ = tw.Flush()
}
