package http

import (
	"net/http"

	"grana/internal/core"
	"grana/internal/ledger"
)

// expensePayload covers both create (all required fields present) and
// patch (any subset). Amounts travel as decimal strings; the boundary
// converts them to cents.
type expensePayload struct {
	Description  *string `json:"description"`
	Amount       *string `json:"amount"`
	Date         *string `json:"date"`
	Category     *string `json:"category"`
	Method       *string `json:"paymentMethod"`
	CardID       *string `json:"cardId"`
	Installments *int    `json:"installments"`
	Notes        *string `json:"notes"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var p expensePayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Description == nil || p.Amount == nil || p.Date == nil || p.Category == nil || p.Method == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "description, amount, date, category and paymentMethod are required")
		return
	}

	cents, err := core.ParseDecimalToCents(*p.Amount)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := core.ParseDate(*p.Date)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	e := core.Expense{
		Description: sanitize(*p.Description),
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Category:    core.ExpenseCategory(*p.Category),
		Method:      core.PaymentMethod(*p.Method),
	}
	if p.CardID != nil {
		e.CardID = *p.CardID
	}
	if p.Installments != nil {
		e.Installments = *p.Installments
	}
	if p.Notes != nil {
		e.Notes = sanitize(*p.Notes)
	}
	if err := e.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if e.CardID != "" {
		if _, ok := s.book.Card(e.CardID); !ok {
			s.writeError(w, http.StatusUnprocessableEntity, "unknown card")
			return
		}
	}

	created := s.book.AddExpense(r.Context(), e)
	s.summaryCache.Invalidate()
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	current, ok := s.book.Expense(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	var p expensePayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := ledger.ExpensePatch{
		Installments: p.Installments,
	}
	if p.Description != nil {
		desc := sanitize(*p.Description)
		if desc == "" {
			s.writeError(w, http.StatusUnprocessableEntity, "description cannot be empty")
			return
		}
		patch.Description = &desc
	}
	if p.Amount != nil {
		cents, err := core.ParseDecimalToCents(*p.Amount)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		patch.Amount = &core.Money{Cents: cents}
	}
	if p.Date != nil {
		date, err := core.ParseDate(*p.Date)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}
	if p.Category != nil {
		cat := core.ExpenseCategory(*p.Category)
		if !cat.Valid() {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid category")
			return
		}
		patch.Category = &cat
	}
	if p.Method != nil {
		method := core.PaymentMethod(*p.Method)
		if !method.Valid() {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid payment method")
			return
		}
		patch.Method = &method
	}
	if p.CardID != nil {
		patch.CardID = p.CardID
	}
	if p.Notes != nil {
		notes := sanitize(*p.Notes)
		patch.Notes = &notes
	}

	// Reject a patch that would leave a credit expense without a card.
	method := current.Method
	if patch.Method != nil {
		method = *patch.Method
	}
	cardID := current.CardID
	if patch.CardID != nil {
		cardID = *patch.CardID
	}
	if method == core.MethodCredit && cardID == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "credit expense requires a card")
		return
	}
	if cardID != "" && cardID != current.CardID {
		if _, ok := s.book.Card(cardID); !ok {
			s.writeError(w, http.StatusUnprocessableEntity, "unknown card")
			return
		}
	}

	updated, ok := s.book.UpdateExpense(r.Context(), id, patch)
	if !ok {
		s.writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.summaryCache.Invalidate()
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !s.book.RemoveExpense(r.Context(), r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.summaryCache.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	expenses := s.book.ExpensesForMonth(year, month)
	if expenses == nil {
		expenses = []core.Expense{}
	}
	s.writeJSON(w, http.StatusOK, expenses)
}
