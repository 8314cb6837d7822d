// Package memory is an in-memory sheets.Exporter for tests and for
// running the worker without Google credentials.
package memory

import (
	"context"
	"sync"

	"grana/internal/core"
	"grana/internal/sheets"
)

type Store struct {
	mu       sync.Mutex
	expenses map[string]core.Expense
	incomes  map[string]core.AdditionalIncome
}

var _ sheets.Exporter = (*Store)(nil)

func New() *Store {
	return &Store{
		expenses: make(map[string]core.Expense),
		incomes:  make(map[string]core.AdditionalIncome),
	}
}

func (s *Store) UpsertExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expenses, id)
	return nil
}

func (s *Store) UpsertIncome(_ context.Context, a core.AdditionalIncome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes[a.ID] = a
	return nil
}

func (s *Store) DeleteIncome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.incomes, id)
	return nil
}

// Expense reads back a mirrored expense; test helper.
func (s *Store) Expense(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	return e, ok
}

// Income reads back a mirrored income entry; test helper.
func (s *Store) Income(id string) (core.AdditionalIncome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.incomes[id]
	return a, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expenses) + len(s.incomes)
}
