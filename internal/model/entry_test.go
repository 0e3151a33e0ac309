package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryString(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{
			Entry{Date: "2024-01-02", Kind: KindExpense, Category: "Food", Description: "Lunch", Amount: decimal.NewFromInt(-50)},
			"2024-01-02 | Expense [Food] - Lunch: -50.00",
		},
		{
			Entry{Date: "2024-01-01", Kind: KindIncome, Category: "Salary", Description: "Paycheck", Amount: decimal.RequireFromString("1000.5")},
			"2024-01-01 | Income [Salary] - Paycheck: 1000.50",
		},
		{
			Entry{Kind: "收入", Amount: decimal.Zero},
			" | 收入 [] - : 0.00",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.entry.String())
	}
}
