// Package worker drives the spreadsheet export: it consumes ledger
// change events and mirrors each record through the sheets ports.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"grana/internal/amqp"
	applog "grana/internal/log"
	"grana/internal/sheets"
)

// EventConsumer delivers ledger events to a handler until the context
// ends. Satisfied by *amqp.Client.
type EventConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, amqp.Event) error) error
}

type ExportWorker struct {
	exporter sheets.Exporter
	logger   *slog.Logger
}

func NewExportWorker(exporter sheets.Exporter, logger *applog.Logger) *ExportWorker {
	return &ExportWorker{
		exporter: exporter,
		logger:   logger.WithComponent(applog.ComponentWorker).Logger,
	}
}

// Run blocks consuming events until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context, consumer EventConsumer) error {
	w.logger.InfoContext(ctx, "Export worker started", applog.FieldOperation, applog.OpStartup)
	return consumer.Consume(ctx, w.Handle)
}

// Handle mirrors one event. Errors bubble up so the consumer can nack
// and redeliver; exports are idempotent, redelivery is safe.
func (w *ExportWorker) Handle(ctx context.Context, event amqp.Event) error {
	switch event.Kind {
	case amqp.KindExpenseUpsert:
		if err := w.exporter.UpsertExpense(ctx, *event.Expense); err != nil {
			return fmt.Errorf("export expense %s: %w", event.Expense.ID, err)
		}
		w.logger.InfoContext(ctx, "Expense exported",
			applog.FieldExpenseID, event.Expense.ID, applog.FieldOperation, applog.OpExport)
	case amqp.KindExpenseDelete:
		if err := w.exporter.DeleteExpense(ctx, event.Expense.ID); err != nil {
			return fmt.Errorf("unexport expense %s: %w", event.Expense.ID, err)
		}
		w.logger.InfoContext(ctx, "Expense export removed",
			applog.FieldExpenseID, event.Expense.ID, applog.FieldOperation, applog.OpExport)
	case amqp.KindIncomeUpsert:
		if err := w.exporter.UpsertIncome(ctx, *event.Income); err != nil {
			return fmt.Errorf("export income %s: %w", event.Income.ID, err)
		}
		w.logger.InfoContext(ctx, "Income exported",
			applog.FieldIncomeID, event.Income.ID, applog.FieldOperation, applog.OpExport)
	case amqp.KindIncomeDelete:
		if err := w.exporter.DeleteIncome(ctx, event.Income.ID); err != nil {
			return fmt.Errorf("unexport income %s: %w", event.Income.ID, err)
		}
		w.logger.InfoContext(ctx, "Income export removed",
			applog.FieldIncomeID, event.Income.ID, applog.FieldOperation, applog.OpExport)
	default:
		// DecodeEvent filters unknown kinds; reaching here means a
		// handler was wired to an unvalidated source.
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}
