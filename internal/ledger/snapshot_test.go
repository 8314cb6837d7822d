package ledger

import (
	"context"
	"testing"
	"time"

	"grana/internal/core"
	"grana/internal/storage"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()

	b := testBook(t, store)
	card := b.AddCard(ctx, core.Card{Name: "Nubank", Limit: core.Money{Cents: 500_000}, DueDay: 10})
	expense := b.AddExpense(ctx, core.Expense{
		Description: "Lunch",
		Amount:      core.Money{Cents: 1250},
		Date:        date(2026, time.March, 10),
		Category:    core.CategoryFood,
		Method:      core.MethodCredit,
		CardID:      card.ID,
	})
	task := b.AddTask(ctx, core.Task{
		Title:    "Review budget",
		Date:     date(2026, time.March, 12),
		Category: core.TaskStudy,
		Subtasks: []core.Subtask{{Text: "Export statement"}},
	})
	b.SetSalary(ctx, core.Money{Cents: 500_000})
	b.AddAdditionalIncome(ctx, core.AdditionalIncome{
		Name: "Freelance", Amount: core.Money{Cents: 30_000}, Month: core.MonthKey("2026-03"),
	})
	settings := b.Settings()
	settings.Theme = "dark"
	b.UpdateSettings(ctx, settings)

	restored := testBook(t, store)
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	gotExpense, ok := restored.Expense(expense.ID)
	if !ok {
		t.Fatal("expense missing after restore")
	}
	if gotExpense != expense {
		t.Fatalf("expense = %+v, want %+v", gotExpense, expense)
	}

	gotCard, ok := restored.Card(card.ID)
	if !ok {
		t.Fatal("card missing after restore")
	}
	if gotCard.CurrentBill.Cents != 1250 {
		t.Fatalf("restored bill = %d, want 1250", gotCard.CurrentBill.Cents)
	}

	gotTask, ok := restored.Task(task.ID)
	if !ok {
		t.Fatal("task missing after restore")
	}
	if len(gotTask.Subtasks) != 1 || gotTask.Subtasks[0].Text != "Export statement" {
		t.Fatalf("restored task = %+v", gotTask)
	}

	if got := restored.MonthlyIncome(core.MonthKey("2026-03")); got != 530_000 {
		t.Fatalf("restored march income = %d, want 530000", got)
	}
	if restored.Settings().Theme != "dark" {
		t.Fatalf("restored theme = %q, want dark", restored.Settings().Theme)
	}
}

func TestRestoreEmptyStoreLeavesDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()

	b := testBook(t, store)
	if err := b.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(b.Expenses()) != 0 || len(b.Cards()) != 0 || len(b.Tasks()) != 0 {
		t.Fatal("ledgers should be empty")
	}
	if b.Settings() != DefaultSettings() {
		t.Fatalf("settings = %+v", b.Settings())
	}
	if b.Income().Salary != nil {
		t.Fatal("salary should stay unset")
	}
}

func TestRestoreCoercesLegacyBlobs(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()

	// Old clients wrote string amounts and full timestamps in dates, and a
	// stale cumulative extraIncome. All of it has to load cleanly.
	legacyExpenses := `{"version":1,"state":{"expenses":[
		{"id":"e1","description":"Lunch","amount":"1250","date":"2026-03-10T12:30:00.000Z",
		 "category":"food","paymentMethod":"cash"}
	]}}`
	legacyIncome := `{"version":1,"state":{"salary":500000,
		"additionalIncomes":[{"id":"a1","name":"Bonus","amount":25000,"month":"2026-03"}],
		"extraIncome":999999}}`
	if err := store.Set(ctx, StoreExpenses, []byte(legacyExpenses)); err != nil {
		t.Fatalf("seed expenses: %v", err)
	}
	if err := store.Set(ctx, StoreIncome, []byte(legacyIncome)); err != nil {
		t.Fatalf("seed income: %v", err)
	}

	b := testBook(t, store)
	if err := b.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	e, ok := b.Expense("e1")
	if !ok {
		t.Fatal("legacy expense missing")
	}
	if e.Amount.Cents != 1250 {
		t.Fatalf("coerced amount = %d, want 1250", e.Amount.Cents)
	}
	if e.Date.String() != "2026-03-10" {
		t.Fatalf("coerced date = %q, want 2026-03-10", e.Date)
	}

	// The cumulative cache is recomputed from the entries, never trusted.
	if got := b.Income().ExtraIncome.Cents; got != 25_000 {
		t.Fatalf("recomputed extra income = %d, want 25000", got)
	}
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()
	if err := store.Set(ctx, StoreCards, []byte(`{"version":99,"state":{}}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	b := testBook(t, store)
	if err := b.Restore(ctx); err == nil {
		t.Fatal("restore should fail on unknown snapshot version")
	}
}
