// Package ledger holds the in-memory income/expense ledger: an append-only
// sequence of entries and a running balance kept equal to the sum of their
// signed amounts.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/model"
)

// ErrInvalidAmount is returned by Append when the amount text is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// DefaultExpenseMarkers are the kinds that flip an entry's sign.
var DefaultExpenseMarkers = []model.Kind{model.KindExpense, "支出"}

// DefaultIncomeMarkers are the kinds recognized as income. Any other
// non-expense kind is still booked as income, with a warning.
var DefaultIncomeMarkers = []model.Kind{model.KindIncome, "收入"}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	entries []model.Entry
	balance decimal.Decimal

	expense map[model.Kind]bool
	income  map[model.Kind]bool
	log     *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for append diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithExpenseMarkers replaces the set of kinds that are booked as expenses.
// Matching is exact and case-sensitive.
func WithExpenseMarkers(kinds ...model.Kind) Option {
	return func(l *Ledger) {
		l.expense = kindSet(kinds)
	}
}

// WithIncomeMarkers replaces the set of kinds recognized as income.
func WithIncomeMarkers(kinds ...model.Kind) Option {
	return func(l *Ledger) {
		l.income = kindSet(kinds)
	}
}

// New creates an empty ledger with a zero balance.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		balance: decimal.Zero,
		expense: kindSet(DefaultExpenseMarkers),
		income:  kindSet(DefaultIncomeMarkers),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AppendParams holds the caller-supplied fields of a new entry.
type AppendParams struct {
	Date        string
	Kind        model.Kind
	Category    string
	Description string
	Amount      string // raw user text, parsed by Append
}

// Amounts are limited to the range of a float64.
const (
	maxIntDigits = 309
	minExponent  = -324
)

var maxAmount = decimal.NewFromFloat(math.MaxFloat64)

// ParseAmount parses amount text, ignoring surrounding whitespace. Text that
// is not a number, or whose value lies outside the float64 range, yields
// ErrInvalidAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	// Bound the exponent first: rescaling 1e50000000 builds a 50M-digit integer.
	exp := d.Exponent()
	if exp < minExponent || exp > maxIntDigits {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, text)
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	if int(exp)+digits > maxIntDigits || d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, text)
	}
	return d, nil
}

// Append parses p.Amount, books the entry and updates the balance. On
// ErrInvalidAmount nothing is changed.
func (l *Ledger) Append(p AppendParams) (model.Entry, error) {
	magnitude, err := ParseAmount(p.Amount)
	if err != nil {
		return model.Entry{}, err
	}
	return l.book(p, magnitude), nil
}

func (l *Ledger) book(p AppendParams, magnitude decimal.Decimal) model.Entry {
	expense := l.expense[p.Kind]
	amount := magnitude
	if expense {
		amount = magnitude.Neg()
	} else if !l.income[p.Kind] {
		l.log.Warn("unrecognized kind booked as income",
			zap.String("kind", string(p.Kind)),
			zap.String("category", p.Category))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := model.Entry{
		Seq:         len(l.entries) + 1,
		Date:        p.Date,
		Kind:        p.Kind,
		Category:    p.Category,
		Description: p.Description,
		Magnitude:   magnitude,
		Expense:     expense,
		Amount:      amount,
	}
	l.entries = append(l.entries, e)
	l.balance = l.balance.Add(amount)

	l.log.Debug("entry appended",
		zap.Int("seq", e.Seq),
		zap.String("category", e.Category),
		zap.String("amount", e.Amount.String()),
		zap.String("balance", l.balance.String()))
	return e
}

// TotalBalance returns the running balance.
func (l *Ledger) TotalBalance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// AllEntries returns a copy of every entry in append order.
func (l *Ledger) AllEntries() []model.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesByCategory returns the entries whose category equals category
// exactly, in append order. The result is empty, not nil, when none match.
func (l *Ledger) EntriesByCategory(category string) []model.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []model.Entry{}
	for _, e := range l.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// CategoryTotals sums signed amounts per category, ordered by first appearance.
func (l *Ledger) CategoryTotals() []model.CategoryTotal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	index := make(map[string]int)
	var totals []model.CategoryTotal
	for _, e := range l.entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, model.CategoryTotal{Category: e.Category, Amount: decimal.Zero})
		}
		totals[i].Count++
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
	}
	return totals
}

// Summary returns income and expense totals alongside the balance.
func (l *Ledger) Summary() model.Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := model.Summary{
		Count:   len(l.entries),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Balance: l.balance,
	}
	for _, e := range l.entries {
		if e.Expense {
			s.Expense = s.Expense.Add(e.Magnitude)
		} else {
			s.Income = s.Income.Add(e.Amount)
		}
	}
	return s
}

func kindSet(kinds []model.Kind) map[model.Kind]bool {
	set := make(map[model.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
