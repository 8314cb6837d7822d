// Package sheets defines the ports for mirroring ledger records into an
// external spreadsheet report. Implementations live in subpackages:
// google (Sheets API) and memory (tests).
package sheets

import (
	"context"

	"grana/internal/core"
)

type (
	// ExpenseExporter mirrors expense records.
	ExpenseExporter interface {
		UpsertExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	// IncomeExporter mirrors additional-income records.
	IncomeExporter interface {
		UpsertIncome(ctx context.Context, a core.AdditionalIncome) error
		DeleteIncome(ctx context.Context, id string) error
	}

	// Exporter is the full outbound port the worker drives.
	Exporter interface {
		ExpenseExporter
		IncomeExporter
	}
)
