package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.February || d.Day() != 15 {
		t.Fatalf("got %v", d)
	}
	if !d.In(2024, time.February) {
		t.Fatalf("expected date in 2024-02")
	}
	if d.In(2024, time.March) {
		t.Fatalf("date should not match 2024-03")
	}

	for _, bad := range []string{"", "2024-13-01", "15/02/2024", "garbage"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDateUnmarshalLegacyTimestamp(t *testing.T) {
	var d Date
	if err := d.UnmarshalJSON([]byte(`"2024-02-15T00:00:00.000Z"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-15" {
		t.Fatalf("got %s, want 2024-02-15", d)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Description: "Lunch",
		Amount:      Money{Cents: 1250},
		Date:        NewDate(2024, time.February, 15),
		Category:    CategoryFood,
		Method:      MethodDebit,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(e *Expense)
		want error
	}{
		{"empty description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{"bad category", func(e *Expense) { e.Category = "groceries" }, ErrInvalidCategory},
		{"bad method", func(e *Expense) { e.Method = "check" }, ErrInvalidMethod},
		{"credit without card", func(e *Expense) { e.Method = MethodCredit }, ErrMissingCard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := good
			tc.mut(&e)
			if err := e.Validate(); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCardValidateAndAvailableLimit(t *testing.T) {
	c := Card{Name: "X", Limit: Money{Cents: 500000}, DueDay: 10}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got := c.AvailableLimit(); got != 500000 {
		t.Fatalf("available = %d, want 500000", got)
	}
	c.CurrentBill = Money{Cents: 600000}
	if got := c.AvailableLimit(); got != -100000 {
		t.Fatalf("available = %d, want -100000 (not clamped)", got)
	}

	if err := (Card{Name: "", DueDay: 10}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
	for _, day := range []int{0, 32, -1} {
		if err := (Card{Name: "X", DueDay: day}).Validate(); err != ErrInvalidDueDay {
			t.Errorf("due day %d: expected ErrInvalidDueDay", day)
		}
	}
}

func TestCategoryEnums(t *testing.T) {
	for _, c := range ExpenseCategories() {
		if !c.Valid() {
			t.Errorf("category %s should be valid", c)
		}
		if c.Label() == "" || c.Color() == "" {
			t.Errorf("category %s missing label or color", c)
		}
	}
	if ExpenseCategory("snacks").Valid() {
		t.Errorf("unexpected valid category")
	}
	for _, m := range PaymentMethods() {
		if !m.Valid() {
			t.Errorf("method %s should be valid", m)
		}
	}
	for _, c := range TaskCategories() {
		if !c.Valid() {
			t.Errorf("task category %s should be valid", c)
		}
	}
}

func TestMonthKey(t *testing.T) {
	k := NewMonthKey(2024, time.February)
	if k != "2024-02" {
		t.Fatalf("got %s, want 2024-02", k)
	}
	if _, err := ParseMonthKey("2024-02"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"", "2024", "2024-13", "feb-2024"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Errorf("ParseMonthKey(%q) expected error", bad)
		}
	}
	if !k.Matches("2024-02") {
		t.Fatalf("exact match failed")
	}
	if !k.Matches("2024-02-15") {
		t.Fatalf("legacy full-date match failed")
	}
	if k.Matches("2024-03") {
		t.Fatalf("different month should not match")
	}
}
