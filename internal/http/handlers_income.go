package http

import (
	"net/http"
	"time"

	"grana/internal/core"
	"grana/internal/ledger"
)

type salaryPayload struct {
	Amount *string `json:"amount"`
}

type additionalIncomePayload struct {
	Name   *string `json:"name"`
	Amount *string `json:"amount"`
	Month  *string `json:"month"`
}

// incomeResponse is the snapshot plus the month-scoped figure for the
// requested month.
type incomeResponse struct {
	ledger.IncomeSnapshot
	Month         core.MonthKey `json:"monthKey"`
	MonthlyIncome core.Money    `json:"monthlyIncome"`
}

func (s *Server) handleSetSalary(w http.ResponseWriter, r *http.Request) {
	var p salaryPayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Amount == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "amount is required")
		return
	}
	// Zero is a valid salary: "configured as zero" and "not configured"
	// are distinct states.
	cents, err := core.ParseNonNegativeDecimalToCents(*p.Amount)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	s.book.SetSalary(r.Context(), core.Money{Cents: cents})
	s.summaryCache.Invalidate()
	s.writeJSON(w, http.StatusOK, s.book.Income())
}

func (s *Server) handleAddAdditionalIncome(w http.ResponseWriter, r *http.Request) {
	var p additionalIncomePayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Name == nil || p.Amount == nil || p.Month == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "name, amount and month are required")
		return
	}
	cents, err := core.ParseDecimalToCents(*p.Amount)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	month, err := core.ParseMonthKey(*p.Month)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid month, expected YYYY-MM")
		return
	}

	a := core.AdditionalIncome{
		Name:   sanitize(*p.Name),
		Amount: core.Money{Cents: cents},
		Month:  month,
	}
	if err := a.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.book.AddAdditionalIncome(r.Context(), a)
	s.summaryCache.Invalidate()
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRemoveAdditionalIncome(w http.ResponseWriter, r *http.Request) {
	if !s.book.RemoveAdditionalIncome(r.Context(), r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "income entry not found")
		return
	}
	s.summaryCache.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := core.NewMonthKey(now.Year(), now.Month())
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := core.ParseMonthKey(v)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	snap := s.book.Income()
	if snap.AdditionalIncomes == nil {
		snap.AdditionalIncomes = []core.AdditionalIncome{}
	}
	s.writeJSON(w, http.StatusOK, incomeResponse{
		IncomeSnapshot: snap,
		Month:          month,
		MonthlyIncome:  core.Money{Cents: s.book.MonthlyIncome(month)},
	})
}
