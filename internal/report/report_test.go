package report

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"grana/internal/core"
	"grana/internal/ledger"
	applog "grana/internal/log"
)

func seedBook(t *testing.T) *ledger.Book {
	t.Helper()
	ctx := context.Background()
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	b := ledger.NewBook(nil, nil, logger)

	card := b.AddCard(ctx, core.Card{Name: "Nubank", Limit: core.Money{Cents: 500_000}})
	b.AddExpense(ctx, core.Expense{
		Description: "Lunch",
		Amount:      core.Money{Cents: 1250},
		Date:        core.NewDate(2024, time.February, 15),
		Category:    core.CategoryFood,
		Method:      core.MethodCredit,
		CardID:      card.ID,
	})
	b.AddExpense(ctx, core.Expense{
		Description: "Bus",
		Amount:      core.Money{Cents: 500},
		Date:        core.NewDate(2024, time.February, 16),
		Category:    core.CategoryTransport,
		Method:      core.MethodDebit,
	})
	b.SetSalary(ctx, core.Money{Cents: 500_000})
	b.AddAdditionalIncome(ctx, core.AdditionalIncome{
		Name: "Freelance", Amount: core.Money{Cents: 30_000}, Month: core.MonthKey("2024-02"),
	})
	return b
}

func TestBuildMonthOverview(t *testing.T) {
	b := seedBook(t)

	ov := BuildMonthOverview(b, 2024, time.February)
	if ov.Year != 2024 || ov.Month != 2 {
		t.Fatalf("overview keyed to %d-%d", ov.Year, ov.Month)
	}
	if ov.Total.Cents != 1750 {
		t.Errorf("total = %d, want 1750", ov.Total.Cents)
	}
	if ov.Income.Cents != 530_000 {
		t.Errorf("income = %d, want 530000", ov.Income.Cents)
	}
	if ov.Balance.Cents != 530_000-1750 {
		t.Errorf("balance = %d, want %d", ov.Balance.Cents, 530_000-1750)
	}
	if len(ov.ByCategory) != 2 {
		t.Errorf("byCategory rows = %d, want 2: %+v", len(ov.ByCategory), ov.ByCategory)
	}
	if len(ov.ByMethod) != 2 {
		t.Errorf("byMethod rows = %d, want 2: %+v", len(ov.ByMethod), ov.ByMethod)
	}
}

func TestEmptyMonthYieldsZeroOverview(t *testing.T) {
	b := seedBook(t)

	ov := BuildMonthOverview(b, 2024, time.July)
	if ov.Total.Cents != 0 {
		t.Errorf("total = %d, want 0", ov.Total.Cents)
	}
	// Salary still counts for an empty month; only dated extras drop out.
	if ov.Income.Cents != 500_000 {
		t.Errorf("income = %d, want 500000", ov.Income.Cents)
	}
	if len(ov.ByCategory) != 0 || len(ov.ByMethod) != 0 {
		t.Errorf("expected empty rows, got %+v / %+v", ov.ByCategory, ov.ByMethod)
	}
}

func TestBalanceAndMethodTotals(t *testing.T) {
	b := seedBook(t)

	if got := Balance(b, 2024, time.February); got != 530_000-1750 {
		t.Errorf("balance = %d, want %d", got, 530_000-1750)
	}
	if got := CreditTotal(b, 2024, time.February); got != 1250 {
		t.Errorf("credit total = %d, want 1250", got)
	}
	if got := DebitTotal(b, 2024, time.February); got != 500 {
		t.Errorf("debit total = %d, want 500", got)
	}
	if got := CreditTotal(b, 2024, time.July); got != 0 {
		t.Errorf("credit total for empty month = %d, want 0", got)
	}
}
