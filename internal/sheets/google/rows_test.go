package google

import (
	"testing"
	"time"

	"grana/internal/core"
)

func TestExpenseRow(t *testing.T) {
	row := expenseRow(core.Expense{
		ID:           "e1",
		Description:  "Lunch",
		Amount:       core.Money{Cents: 1250},
		Date:         core.NewDate(2026, time.March, 10),
		Category:     core.CategoryFood,
		Method:       core.MethodCredit,
		CardID:       "c1",
		Installments: 3,
		Notes:        "team",
	})

	want := []any{"e1", "2026-03-10", "Lunch", "Food", "Credit", "12,50", "c1", "3", "team"}
	if len(row) != len(want) {
		t.Fatalf("row has %d cells, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestExpenseRowOmitsZeroInstallments(t *testing.T) {
	row := expenseRow(core.Expense{
		ID: "e2", Description: "Bus", Amount: core.Money{Cents: 500},
		Date: core.NewDate(2026, time.March, 11), Category: core.CategoryTransport,
		Method: core.MethodPix,
	})
	if row[7] != "" {
		t.Errorf("installments cell = %v, want empty", row[7])
	}
}

func TestIncomeRow(t *testing.T) {
	row := incomeRow(core.AdditionalIncome{
		ID: "a1", Name: "Freelance", Amount: core.Money{Cents: 30_000}, Month: "2026-03",
	})
	want := []any{"a1", "2026-03", "Freelance", "300,00"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestExpensesTabName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "Expenses"},
		{"  ", "Expenses"},
		{"Spese", "Spese"},
	}
	for _, tc := range cases {
		if got := expensesTabName(tc.in); got != tc.want {
			t.Errorf("expensesTabName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
