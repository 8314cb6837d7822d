package google

import (
	"strconv"

	"grana/internal/core"
)

// expenseRow renders an expense as one spreadsheet row. Amounts are the
// display string so the sheet stays human-readable; the id in column A
// is the upsert key.
func expenseRow(e core.Expense) []any {
	installments := ""
	if e.Installments > 0 {
		installments = strconv.Itoa(e.Installments)
	}
	return []any{
		e.ID,
		e.Date.String(),
		e.Description,
		e.Category.Label(),
		e.Method.Label(),
		core.FormatCents(e.Amount.Cents),
		e.CardID,
		installments,
		e.Notes,
	}
}

func incomeRow(a core.AdditionalIncome) []any {
	return []any{
		a.ID,
		string(a.Month),
		a.Name,
		core.FormatCents(a.Amount.Cents),
	}
}
