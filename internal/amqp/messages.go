package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"grana/internal/core"
)

// Kind discriminates ledger change events on the wire.
type Kind string

const (
	KindExpenseUpsert Kind = "expense.upsert"
	KindExpenseDelete Kind = "expense.delete"
	KindIncomeUpsert  Kind = "income.upsert"
	KindIncomeDelete  Kind = "income.delete"
)

// Event is one ledger change. It carries the full record because the
// worker has no access to the server's memory; exactly one of Expense
// or Income is set, matching the kind.
type Event struct {
	Kind      Kind                   `json:"kind"`
	Timestamp time.Time              `json:"timestamp"`
	Expense   *core.Expense          `json:"expense,omitempty"`
	Income    *core.AdditionalIncome `json:"income,omitempty"`
}

func newExpenseEvent(kind Kind, e core.Expense) Event {
	return Event{Kind: kind, Timestamp: time.Now().UTC(), Expense: &e}
}

func newIncomeEvent(kind Kind, a core.AdditionalIncome) Event {
	return Event{Kind: kind, Timestamp: time.Now().UTC(), Income: &a}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses a wire message and checks the kind/payload pairing
// so handlers never see a half-formed event.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	switch e.Kind {
	case KindExpenseUpsert, KindExpenseDelete:
		if e.Expense == nil {
			return Event{}, fmt.Errorf("event %s missing expense payload", e.Kind)
		}
	case KindIncomeUpsert, KindIncomeDelete:
		if e.Income == nil {
			return Event{}, fmt.Errorf("event %s missing income payload", e.Kind)
		}
	default:
		return Event{}, fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return e, nil
}
