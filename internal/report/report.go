// Package report builds month-level summaries from the ledgers. Everything
// here is a pure read; the Book stays the only mutation path.
package report

import (
	"time"

	"grana/internal/core"
	"grana/internal/ledger"
)

// MonthOverview is the dashboard payload for one calendar month.
type MonthOverview struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Total      core.Money             `json:"total"`
	Income     core.Money             `json:"income"`
	Balance    core.Money             `json:"balance"`
	ByCategory []ledger.CategoryTotal `json:"byCategory"`
	ByMethod   []ledger.MethodTotal   `json:"byMethod"`
}

// Balance is monthly income minus monthly spending, in cents. Negative
// means the month spent more than it earned.
func Balance(b *ledger.Book, year int, month time.Month) int64 {
	key := core.NewMonthKey(year, month)
	return b.MonthlyIncome(key) - b.MonthlyTotal(year, month)
}

// CreditTotal sums the month's credit-card spending.
func CreditTotal(b *ledger.Book, year int, month time.Month) int64 {
	return methodTotal(b, year, month, core.MethodCredit)
}

// DebitTotal sums the month's debit spending.
func DebitTotal(b *ledger.Book, year int, month time.Month) int64 {
	return methodTotal(b, year, month, core.MethodDebit)
}

func methodTotal(b *ledger.Book, year int, month time.Month, m core.PaymentMethod) int64 {
	for _, row := range b.PaymentMethodTotals(year, month) {
		if row.Method == m {
			return row.Amount.Cents
		}
	}
	return 0
}

// BuildMonthOverview assembles the full month summary in one pass over
// the ledgers. A month with no activity yields zero totals and empty
// rows, never an error.
func BuildMonthOverview(b *ledger.Book, year int, month time.Month) MonthOverview {
	total := b.MonthlyTotal(year, month)
	income := b.MonthlyIncome(core.NewMonthKey(year, month))
	return MonthOverview{
		Year:       year,
		Month:      int(month),
		Total:      core.Money{Cents: total},
		Income:     core.Money{Cents: income},
		Balance:    core.Money{Cents: income - total},
		ByCategory: b.CategoryTotals(year, month),
		ByMethod:   b.PaymentMethodTotals(year, month),
	}
}
