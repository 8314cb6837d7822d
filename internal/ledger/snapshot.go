package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"grana/internal/core"
	applog "grana/internal/log"
)

// Store keys under which each ledger is snapshotted. One blob per
// ledger, so a write only touches the state that actually changed.
const (
	StoreExpenses = "expenses"
	StoreCards    = "cards"
	StoreTasks    = "tasks"
	StoreIncome   = "income"
	StoreSettings = "settings"
)

const snapshotVersion = 1

// envelope wraps every persisted blob with a version so future format
// changes can migrate on read.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

type expenseState struct {
	Expenses []core.Expense `json:"expenses"`
}

type cardState struct {
	Cards []core.Card `json:"cards"`
}

type taskState struct {
	Tasks []core.Task `json:"tasks"`
}

type incomeState struct {
	Salary            *core.Money             `json:"salary"`
	AdditionalIncomes []core.AdditionalIncome `json:"additionalIncomes"`
	ExtraIncome       core.Money              `json:"extraIncome"`
}

// persist snapshots the named stores. Failures are logged and dropped:
// a broken disk must not fail the mutation that already happened in
// memory.
func (b *Book) persist(ctx context.Context, keys ...string) {
	if b.store == nil {
		return
	}
	for _, key := range keys {
		blob, err := b.encode(key)
		if err != nil {
			b.logger.ErrorContext(ctx, "Snapshot encode failed",
				applog.FieldStore, key, applog.FieldOperation, applog.OpSnapshot, applog.ErrAttr(err))
			continue
		}
		if err := b.store.Set(ctx, key, blob); err != nil {
			b.logger.ErrorContext(ctx, "Snapshot write failed",
				applog.FieldStore, key, applog.FieldOperation, applog.OpSnapshot, applog.ErrAttr(err))
		}
	}
}

func (b *Book) encode(key string) ([]byte, error) {
	b.mu.RLock()
	var state any
	switch key {
	case StoreExpenses:
		state = expenseState{Expenses: b.expenses.list()}
	case StoreCards:
		state = cardState{Cards: b.cards.list()}
	case StoreTasks:
		state = taskState{Tasks: b.tasks.list()}
	case StoreIncome:
		snap := b.income.snapshot()
		state = incomeState{
			Salary:            snap.Salary,
			AdditionalIncomes: snap.AdditionalIncomes,
			ExtraIncome:       snap.ExtraIncome,
		}
	case StoreSettings:
		state = b.settings
	default:
		b.mu.RUnlock()
		return nil, fmt.Errorf("unknown store key %q", key)
	}
	b.mu.RUnlock()

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal %s state: %w", key, err)
	}
	return json.Marshal(envelope{Version: snapshotVersion, State: raw})
}

// Restore loads every store's snapshot into the Book. Missing blobs
// leave the ledger empty; a corrupt blob fails the whole restore so a
// half-loaded book never serves traffic.
func (b *Book) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range []string{StoreExpenses, StoreCards, StoreTasks, StoreIncome, StoreSettings} {
		blob, err := b.store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s snapshot: %w", key, err)
		}
		if blob == nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(blob, &env); err != nil {
			return fmt.Errorf("decode %s envelope: %w", key, err)
		}
		if env.Version != snapshotVersion {
			return fmt.Errorf("unsupported %s snapshot version %d", key, env.Version)
		}
		if err := b.restoreState(key, env.State); err != nil {
			return err
		}
		b.logger.InfoContext(ctx, "Snapshot restored",
			applog.FieldStore, key, applog.FieldOperation, applog.OpRestore)
	}

	// The cumulative extra-income cache is derived state; never trust
	// the stored figure over the entries themselves.
	b.income.recompute()
	return nil
}

func (b *Book) restoreState(key string, raw json.RawMessage) error {
	switch key {
	case StoreExpenses:
		var s expenseState
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s state: %w", key, err)
		}
		b.expenses.expenses = s.Expenses
	case StoreCards:
		var s cardState
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s state: %w", key, err)
		}
		b.cards.cards = s.Cards
	case StoreTasks:
		var s taskState
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s state: %w", key, err)
		}
		b.tasks.tasks = s.Tasks
	case StoreIncome:
		var s incomeState
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s state: %w", key, err)
		}
		b.income.salary = s.Salary
		b.income.additional = s.AdditionalIncomes
		b.income.extra = s.ExtraIncome
	case StoreSettings:
		s := DefaultSettings()
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s state: %w", key, err)
		}
		b.settings = s
	}
	return nil
}
