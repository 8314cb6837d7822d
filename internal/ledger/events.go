package ledger

import (
	"context"

	"grana/internal/core"
)

// EventPublisher receives ledger change notifications. Publishing is
// best-effort: the Book logs failures and carries on, the in-memory state
// stays the source of truth.
type EventPublisher interface {
	PublishExpenseUpsert(ctx context.Context, e core.Expense) error
	PublishExpenseDelete(ctx context.Context, e core.Expense) error
	PublishIncomeUpsert(ctx context.Context, a core.AdditionalIncome) error
	PublishIncomeDelete(ctx context.Context, a core.AdditionalIncome) error
}
