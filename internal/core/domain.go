package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrMissingCard      = errors.New("credit expense requires a card")
	ErrInvalidDueDay    = errors.New("due day must be between 1 and 31")
	ErrInvalidMonthKey  = errors.New("invalid month key")
)

// Date is a calendar date with no time-of-day component. It marshals as
// "2006-01-02", the format the ledgers use for daily filtering.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current date with the time-of-day truncated.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// In reports whether the date falls in the given calendar month.
func (d Date) In(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Old blobs stored full timestamps; take the date part.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

// Expense is a single spending record. Amount is always minor units.
// CardID is set for credit expenses (and tolerated for debit, where it has
// no bill effect); Installments only applies to credit and defaults to 1.
type Expense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       Money           `json:"amount"`
	Date         Date            `json:"date"`
	Category     ExpenseCategory `json:"category"`
	Method       PaymentMethod   `json:"paymentMethod"`
	CardID       string          `json:"cardId,omitempty"`
	Installments int             `json:"installments,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if !e.Method.Valid() {
		return ErrInvalidMethod
	}
	if e.Method == MethodCredit && e.CardID == "" {
		return ErrMissingCard
	}
	return nil
}

// Card is a credit card with a running bill. CurrentBill is maintained
// exclusively through expense-ledger side effects.
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastDigits  string `json:"lastDigits"`
	Color       string `json:"color"`
	Limit       Money  `json:"limit"`
	DueDay      int    `json:"dueDate"`
	CurrentBill Money  `json:"currentBill"`
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyTitle
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

// AvailableLimit is Limit minus CurrentBill. Negative means over limit;
// the value is deliberately not clamped so callers can surface that state.
func (c Card) AvailableLimit() int64 {
	return c.Limit.Cents - c.CurrentBill.Cents
}

// Subtask is a checklist item inside a task. Slice order is insertion
// order and is meaningful for display.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a dated to-do with optional time and nested subtasks.
type Task struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Date     Date         `json:"date"`
	Time     string       `json:"time,omitempty"`
	Category TaskCategory `json:"category"`
	Subtasks []Subtask    `json:"subtasks"`
	Notes    string       `json:"notes,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Clone returns a deep copy so callers can hand tasks out of a ledger
// without sharing the subtask slice.
func (t Task) Clone() Task {
	out := t
	out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	return out
}
