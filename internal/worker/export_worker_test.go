package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"grana/internal/amqp"
	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/sheets/memory"
)

func testWorker(t *testing.T) (*ExportWorker, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	return NewExportWorker(store, logger), store
}

func expenseEvent(kind amqp.Kind, e core.Expense) amqp.Event {
	return amqp.Event{Kind: kind, Timestamp: time.Now(), Expense: &e}
}

func TestHandleMirrorsExpenseLifecycle(t *testing.T) {
	w, store := testWorker(t)
	ctx := context.Background()
	e := core.Expense{
		ID: "e1", Description: "Lunch", Amount: core.Money{Cents: 1250},
		Date: core.NewDate(2026, time.March, 10), Category: core.CategoryFood,
		Method: core.MethodPix,
	}

	if err := w.Handle(ctx, expenseEvent(amqp.KindExpenseUpsert, e)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok := store.Expense("e1")
	if !ok || got.Description != "Lunch" {
		t.Fatalf("mirrored expense = %+v, %v", got, ok)
	}

	// Replaying the same upsert stays idempotent
	if err := w.Handle(ctx, expenseEvent(amqp.KindExpenseUpsert, e)); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}

	if err := w.Handle(ctx, expenseEvent(amqp.KindExpenseDelete, e)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.Expense("e1"); ok {
		t.Fatal("expense still mirrored after delete")
	}
}

func TestHandleMirrorsIncome(t *testing.T) {
	w, store := testWorker(t)
	ctx := context.Background()
	a := core.AdditionalIncome{ID: "a1", Name: "Bonus", Amount: core.Money{Cents: 5000}, Month: "2026-03"}

	if err := w.Handle(ctx, amqp.Event{Kind: amqp.KindIncomeUpsert, Income: &a}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, ok := store.Income("a1"); !ok {
		t.Fatal("income not mirrored")
	}
	if err := w.Handle(ctx, amqp.Event{Kind: amqp.KindIncomeDelete, Income: &a}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("len = %d, want 0", store.Len())
	}
}

func TestHandleRejectsUnknownKind(t *testing.T) {
	w, _ := testWorker(t)
	if err := w.Handle(context.Background(), amqp.Event{Kind: "card.upsert"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

type failingExporter struct {
	*memory.Store
	err error
}

func (f failingExporter) UpsertExpense(context.Context, core.Expense) error { return f.err }

func TestHandlePropagatesExportErrors(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	w := NewExportWorker(failingExporter{Store: memory.New(), err: wantErr}, logger)

	e := core.Expense{ID: "e1", Description: "Lunch", Amount: core.Money{Cents: 1250},
		Date: core.NewDate(2026, time.March, 10), Category: core.CategoryFood, Method: core.MethodPix}
	err := w.Handle(context.Background(), expenseEvent(amqp.KindExpenseUpsert, e))
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}
