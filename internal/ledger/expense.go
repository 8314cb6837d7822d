package ledger

import (
	"time"

	"github.com/google/uuid"

	"grana/internal/core"
)

// expenseLedger owns the expense records. The Book serializes access and
// wires the credit-card bill side effects.
type expenseLedger struct {
	expenses []core.Expense
}

// ExpensePatch is a partial expense update. Nil fields keep their current
// value. CardID distinguishes "not supplied" (nil) from "cleared" (pointer
// to empty string).
type ExpensePatch struct {
	Description  *string
	Amount       *core.Money
	Date         *core.Date
	Category     *core.ExpenseCategory
	Method       *core.PaymentMethod
	CardID       *string
	Installments *int
	Notes        *string
}

func (l *expenseLedger) add(e core.Expense) core.Expense {
	e.ID = uuid.NewString()
	if e.Method == core.MethodCredit && e.Installments <= 0 {
		e.Installments = 1
	}
	l.expenses = append(l.expenses, e)
	return e
}

func (l *expenseLedger) remove(id string) (core.Expense, bool) {
	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			return e, true
		}
	}
	return core.Expense{}, false
}

// apply merges the patch into the stored record and returns the old and
// new versions. The caller settles card bills from the pair.
func (l *expenseLedger) apply(id string, p ExpensePatch) (old, updated core.Expense, ok bool) {
	for i := range l.expenses {
		if l.expenses[i].ID != id {
			continue
		}
		old = l.expenses[i]
		e := &l.expenses[i]
		if p.Description != nil {
			e.Description = *p.Description
		}
		if p.Amount != nil {
			e.Amount = *p.Amount
		}
		if p.Date != nil {
			e.Date = *p.Date
		}
		if p.Category != nil {
			e.Category = *p.Category
		}
		if p.Method != nil {
			e.Method = *p.Method
		}
		if p.CardID != nil {
			e.CardID = *p.CardID
		}
		if p.Installments != nil {
			e.Installments = *p.Installments
		}
		if p.Notes != nil {
			e.Notes = *p.Notes
		}
		if e.Method == core.MethodCredit && e.Installments <= 0 {
			e.Installments = 1
		}
		return old, *e, true
	}
	return core.Expense{}, core.Expense{}, false
}

func (l *expenseLedger) get(id string) (core.Expense, bool) {
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

func (l *expenseLedger) list() []core.Expense {
	return append([]core.Expense(nil), l.expenses...)
}

// clearCard drops the card reference from every expense pointing at the
// removed card, returning how many records were touched.
func (l *expenseLedger) clearCard(cardID string) int {
	n := 0
	for i := range l.expenses {
		if l.expenses[i].CardID == cardID {
			l.expenses[i].CardID = ""
			n++
		}
	}
	return n
}

func (l *expenseLedger) monthlyTotal(year int, month time.Month) int64 {
	var total int64
	for _, e := range l.expenses {
		if e.Date.In(year, month) {
			total += e.Amount.Cents
		}
	}
	return total
}

func (l *expenseLedger) dailyTotal(date core.Date) int64 {
	var total int64
	for _, e := range l.expenses {
		if e.Date.Equal(date.Time) {
			total += e.Amount.Cents
		}
	}
	return total
}

// CategoryTotal is a per-category sum for one month or day. Categories
// with no matching expenses are omitted, never zero-filled. Color is the
// category's chart color, carried so clients render without their own
// category mapping.
type CategoryTotal struct {
	Category core.ExpenseCategory `json:"category"`
	Color    string               `json:"color"`
	Amount   core.Money           `json:"amount"`
}

// MethodTotal is a per-payment-method sum for one month.
type MethodTotal struct {
	Method core.PaymentMethod `json:"method"`
	Amount core.Money         `json:"amount"`
}

func (l *expenseLedger) categoryTotals(year int, month time.Month) []CategoryTotal {
	sums := make(map[core.ExpenseCategory]int64)
	for _, e := range l.expenses {
		if e.Date.In(year, month) {
			sums[e.Category] += e.Amount.Cents
		}
	}
	return collectCategoryTotals(sums)
}

func (l *expenseLedger) methodTotals(year int, month time.Month) []MethodTotal {
	sums := make(map[core.PaymentMethod]int64)
	for _, e := range l.expenses {
		if e.Date.In(year, month) {
			sums[e.Method] += e.Amount.Cents
		}
	}
	out := make([]MethodTotal, 0, len(sums))
	for _, m := range core.PaymentMethods() {
		if cents, ok := sums[m]; ok {
			out = append(out, MethodTotal{Method: m, Amount: core.Money{Cents: cents}})
		}
	}
	return out
}

func (l *expenseLedger) dailyByCategory(date core.Date) []CategoryTotal {
	sums := make(map[core.ExpenseCategory]int64)
	for _, e := range l.expenses {
		if e.Date.Equal(date.Time) {
			sums[e.Category] += e.Amount.Cents
		}
	}
	return collectCategoryTotals(sums)
}

func (l *expenseLedger) listMonth(year int, month time.Month) []core.Expense {
	var out []core.Expense
	for _, e := range l.expenses {
		if e.Date.In(year, month) {
			out = append(out, e)
		}
	}
	return out
}

// collectCategoryTotals orders map sums by the category display order so
// results are deterministic.
func collectCategoryTotals(sums map[core.ExpenseCategory]int64) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(sums))
	for _, c := range core.ExpenseCategories() {
		if cents, ok := sums[c]; ok {
			out = append(out, CategoryTotal{Category: c, Color: c.Color(), Amount: core.Money{Cents: cents}})
		}
	}
	return out
}

// creditContribution is the amount an expense adds to its card's bill:
// the full amount for credit purchases with a card, zero otherwise.
// Installments spread payments without changing the owed total, so they
// do not factor in.
func creditContribution(e core.Expense) int64 {
	if e.Method == core.MethodCredit && e.CardID != "" {
		return e.Amount.Cents
	}
	return 0
}
