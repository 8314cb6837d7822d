// Package ledger implements the in-memory ledgers (expenses, cards, tasks,
// income, settings) behind a single state container, the Book.
//
// The Book is the only mutation path. It serializes access under one lock
// so the expense→card bill side effect is atomic from any caller's point
// of view, snapshots the touched store after every mutation, and emits
// change events for the export worker. Snapshot and publish failures are
// logged and swallowed: the in-memory state is the source of truth for the
// running session.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/storage"
)

type Book struct {
	mu sync.RWMutex

	expenses expenseLedger
	cards    cardLedger
	tasks    taskLedger
	income   incomeModel
	settings Settings

	store  storage.SnapshotStore // optional
	events EventPublisher        // optional
	logger *slog.Logger
}

// NewBook creates an empty Book. Both the snapshot store and the event
// publisher may be nil; the ledgers then run purely in memory.
func NewBook(store storage.SnapshotStore, events EventPublisher, logger *applog.Logger) *Book {
	if logger == nil {
		logger = applog.New(applog.Config{})
	}
	return &Book{
		store:    store,
		events:   events,
		settings: DefaultSettings(),
		logger:   logger.WithComponent(applog.ComponentLedger).Logger,
	}
}

// --- Expenses ---

// AddExpense stores the record and, for credit purchases, charges the
// referenced card's bill. Validation happened at the boundary; the ledger
// trusts its input.
func (b *Book) AddExpense(ctx context.Context, e core.Expense) core.Expense {
	b.mu.Lock()
	e = b.expenses.add(e)
	if delta := creditContribution(e); delta != 0 {
		b.cards.applyBill(e.CardID, delta)
	}
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "Expense added",
		applog.FieldExpenseID, e.ID,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, string(e.Category),
		applog.FieldPayMethod, string(e.Method))
	b.persist(ctx, StoreExpenses, StoreCards)
	if b.events != nil {
		if err := b.events.PublishExpenseUpsert(ctx, e); err != nil {
			b.logger.WarnContext(ctx, "Expense event publish failed", applog.FieldExpenseID, e.ID, applog.ErrAttr(err))
		}
	}
	return e
}

// RemoveExpense deletes the record and reverses its bill contribution
// using the stored amount, guaranteeing an exact reversal. A missing id
// is a no-op.
func (b *Book) RemoveExpense(ctx context.Context, id string) bool {
	b.mu.Lock()
	e, ok := b.expenses.remove(id)
	if ok {
		if delta := creditContribution(e); delta != 0 {
			b.cards.applyBill(e.CardID, -delta)
		}
	}
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Expense remove on unknown id", applog.FieldExpenseID, id)
		return false
	}
	b.logger.InfoContext(ctx, "Expense removed", applog.FieldExpenseID, id)
	b.persist(ctx, StoreExpenses, StoreCards)
	if b.events != nil {
		if err := b.events.PublishExpenseDelete(ctx, e); err != nil {
			b.logger.WarnContext(ctx, "Expense event publish failed", applog.FieldExpenseID, id, applog.ErrAttr(err))
		}
	}
	return true
}

// UpdateExpense merges the patch and settles card bills by fully
// reversing the old contribution and applying the new one. Same-card
// updates still go through the reverse/reapply pair; a delta shortcut
// breaks as soon as the method or the card changes.
func (b *Book) UpdateExpense(ctx context.Context, id string, p ExpensePatch) (core.Expense, bool) {
	b.mu.Lock()
	old, updated, ok := b.expenses.apply(id, p)
	if ok {
		if delta := creditContribution(old); delta != 0 {
			b.cards.applyBill(old.CardID, -delta)
		}
		if delta := creditContribution(updated); delta != 0 {
			b.cards.applyBill(updated.CardID, delta)
		}
	}
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Expense update on unknown id", applog.FieldExpenseID, id)
		return core.Expense{}, false
	}
	b.logger.InfoContext(ctx, "Expense updated",
		applog.FieldExpenseID, id,
		applog.FieldAmountCents, updated.Amount.Cents)
	b.persist(ctx, StoreExpenses, StoreCards)
	if b.events != nil {
		if err := b.events.PublishExpenseUpsert(ctx, updated); err != nil {
			b.logger.WarnContext(ctx, "Expense event publish failed", applog.FieldExpenseID, id, applog.ErrAttr(err))
		}
	}
	return updated, true
}

func (b *Book) Expense(id string) (core.Expense, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.get(id)
}

func (b *Book) Expenses() []core.Expense {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.list()
}

func (b *Book) ExpensesForMonth(year int, month time.Month) []core.Expense {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.listMonth(year, month)
}

func (b *Book) MonthlyTotal(year int, month time.Month) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.monthlyTotal(year, month)
}

func (b *Book) DailyTotal(date core.Date) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.dailyTotal(date)
}

func (b *Book) CategoryTotals(year int, month time.Month) []CategoryTotal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.categoryTotals(year, month)
}

func (b *Book) PaymentMethodTotals(year int, month time.Month) []MethodTotal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.methodTotals(year, month)
}

func (b *Book) DailyByCategory(date core.Date) []CategoryTotal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expenses.dailyByCategory(date)
}

// --- Cards ---

func (b *Book) AddCard(ctx context.Context, c core.Card) core.Card {
	b.mu.Lock()
	c = b.cards.add(c)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "Card added", applog.FieldCardID, c.ID)
	b.persist(ctx, StoreCards)
	return c
}

// RemoveCard deletes the card and clears the card reference on every
// expense that pointed at it, so no dangling ids survive. The expenses
// themselves are kept.
func (b *Book) RemoveCard(ctx context.Context, id string) bool {
	b.mu.Lock()
	_, ok := b.cards.remove(id)
	cleared := 0
	if ok {
		cleared = b.expenses.clearCard(id)
	}
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Card remove on unknown id", applog.FieldCardID, id)
		return false
	}
	b.logger.InfoContext(ctx, "Card removed", applog.FieldCardID, id, "orphaned_expenses_cleared", cleared)
	if cleared > 0 {
		b.persist(ctx, StoreCards, StoreExpenses)
	} else {
		b.persist(ctx, StoreCards)
	}
	return true
}

func (b *Book) UpdateCard(ctx context.Context, id string, p CardPatch) (core.Card, bool) {
	b.mu.Lock()
	c, ok := b.cards.update(id, p)
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Card update on unknown id", applog.FieldCardID, id)
		return core.Card{}, false
	}
	b.persist(ctx, StoreCards)
	return c, true
}

func (b *Book) Card(id string) (core.Card, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cards.get(id)
}

func (b *Book) Cards() []core.Card {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cards.list()
}

// AvailableLimit returns limit minus current bill for the card; the
// second return is false for an unknown id.
func (b *Book) AvailableLimit(id string) (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.cards.get(id)
	if !ok {
		return 0, false
	}
	return c.AvailableLimit(), true
}

// --- Tasks ---

func (b *Book) AddTask(ctx context.Context, t core.Task) core.Task {
	b.mu.Lock()
	t = b.tasks.add(t)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "Task added", applog.FieldTaskID, t.ID, applog.FieldCategory, string(t.Category))
	b.persist(ctx, StoreTasks)
	return t
}

func (b *Book) RemoveTask(ctx context.Context, id string) bool {
	b.mu.Lock()
	_, ok := b.tasks.remove(id)
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Task remove on unknown id", applog.FieldTaskID, id)
		return false
	}
	b.persist(ctx, StoreTasks)
	return true
}

func (b *Book) UpdateTask(ctx context.Context, id string, p TaskPatch) (core.Task, bool) {
	b.mu.Lock()
	t, ok := b.tasks.update(id, p)
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Task update on unknown id", applog.FieldTaskID, id)
		return core.Task{}, false
	}
	b.persist(ctx, StoreTasks)
	return t, true
}

// ToggleSubtask flips completion on one subtask; unknown task or subtask
// ids are a logged no-op.
func (b *Book) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (core.Task, bool) {
	b.mu.Lock()
	t, ok := b.tasks.toggleSubtask(taskID, subtaskID)
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Subtask toggle on unknown id",
			applog.FieldTaskID, taskID, applog.FieldSubtaskID, subtaskID)
		return core.Task{}, false
	}
	b.persist(ctx, StoreTasks)
	return t, true
}

func (b *Book) Task(id string) (core.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.get(id)
}

func (b *Book) Tasks() []core.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.list()
}

func (b *Book) UpcomingTasks(from core.Date) []core.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.upcoming(from)
}

func (b *Book) TasksByCategory(c core.TaskCategory) []core.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.byCategory(c)
}

func (b *Book) TasksByDate(date core.Date) []core.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.byDate(date)
}

func (b *Book) TasksForMonth(year int, month time.Month) map[string][]core.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tasks.forMonth(year, month)
}

// --- Income ---

func (b *Book) SetSalary(ctx context.Context, amount core.Money) {
	b.mu.Lock()
	b.income.setSalary(amount)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "Salary set", applog.FieldAmountCents, amount.Cents)
	b.persist(ctx, StoreIncome)
}

func (b *Book) AddAdditionalIncome(ctx context.Context, a core.AdditionalIncome) core.AdditionalIncome {
	b.mu.Lock()
	a = b.income.addAdditional(a)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "Additional income added",
		applog.FieldIncomeID, a.ID,
		applog.FieldAmountCents, a.Amount.Cents,
		applog.FieldMonth, string(a.Month))
	b.persist(ctx, StoreIncome)
	if b.events != nil {
		if err := b.events.PublishIncomeUpsert(ctx, a); err != nil {
			b.logger.WarnContext(ctx, "Income event publish failed", applog.FieldIncomeID, a.ID, applog.ErrAttr(err))
		}
	}
	return a
}

func (b *Book) RemoveAdditionalIncome(ctx context.Context, id string) bool {
	b.mu.Lock()
	a, ok := b.income.removeAdditional(id)
	b.mu.Unlock()

	if !ok {
		b.logger.DebugContext(ctx, "Additional income remove on unknown id", applog.FieldIncomeID, id)
		return false
	}
	b.persist(ctx, StoreIncome)
	if b.events != nil {
		if err := b.events.PublishIncomeDelete(ctx, a); err != nil {
			b.logger.WarnContext(ctx, "Income event publish failed", applog.FieldIncomeID, id, applog.ErrAttr(err))
		}
	}
	return true
}

func (b *Book) Income() IncomeSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.income.snapshot()
}

// MonthlyIncome is the canonical month-scoped income figure: salary plus
// the additional entries dated to the month. The cumulative ExtraIncome
// cache never feeds this.
func (b *Book) MonthlyIncome(month core.MonthKey) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.income.monthlyIncome(month)
}

// --- Settings ---

func (b *Book) Settings() Settings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings
}

func (b *Book) UpdateSettings(ctx context.Context, s Settings) {
	b.mu.Lock()
	b.settings = s
	b.mu.Unlock()
	b.persist(ctx, StoreSettings)
}
