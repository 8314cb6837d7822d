package core

import (
	"strings"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM". Additional incomes
// are keyed by month; matching is prefix-based because very old blobs
// stored full dates in the field.
type MonthKey string

const monthKeyLayout = "2006-01"

// NewMonthKey builds the key for a year and month.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthKeyLayout))
}

// ParseMonthKey validates a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(monthKeyLayout, s); err != nil {
		return "", ErrInvalidMonthKey
	}
	return MonthKey(s), nil
}

// Matches reports whether a stored month value belongs to this key.
func (k MonthKey) Matches(stored MonthKey) bool {
	return strings.HasPrefix(string(stored), string(k))
}

// AdditionalIncome is a dated extra-income entry on top of the base salary.
type AdditionalIncome struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Amount Money    `json:"amount"`
	Month  MonthKey `json:"month"`
}

func (a AdditionalIncome) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyDescription
	}
	if err := a.Amount.Validate(); err != nil {
		return err
	}
	if _, err := ParseMonthKey(string(a.Month)); err != nil {
		return err
	}
	return nil
}
