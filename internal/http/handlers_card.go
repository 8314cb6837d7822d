package http

import (
	"net/http"

	"grana/internal/core"
	"grana/internal/ledger"
)

type cardPayload struct {
	Name       *string `json:"name"`
	LastDigits *string `json:"lastDigits"`
	Color      *string `json:"color"`
	Limit      *string `json:"limit"`
	DueDay     *int    `json:"dueDate"`
}

// cardResponse widens the record with the derived available limit.
type cardResponse struct {
	core.Card
	AvailableLimit int64 `json:"availableLimit"`
}

func toCardResponse(c core.Card) cardResponse {
	return cardResponse{Card: c, AvailableLimit: c.AvailableLimit()}
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var p cardPayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Name == nil || p.Limit == nil || p.DueDay == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "name, limit and dueDate are required")
		return
	}
	cents, err := core.ParseDecimalToCents(*p.Limit)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	c := core.Card{
		Name:   sanitize(*p.Name),
		Limit:  core.Money{Cents: cents},
		DueDay: *p.DueDay,
	}
	if p.LastDigits != nil {
		c.LastDigits = sanitize(*p.LastDigits)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if err := c.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.book.AddCard(r.Context(), c)
	s.writeJSON(w, http.StatusCreated, toCardResponse(created))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var p cardPayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := ledger.CardPatch{DueDay: p.DueDay}
	if p.Name != nil {
		name := sanitize(*p.Name)
		if name == "" {
			s.writeError(w, http.StatusUnprocessableEntity, "name cannot be empty")
			return
		}
		patch.Name = &name
	}
	if p.LastDigits != nil {
		digits := sanitize(*p.LastDigits)
		patch.LastDigits = &digits
	}
	if p.Color != nil {
		patch.Color = p.Color
	}
	if p.Limit != nil {
		cents, err := core.ParseDecimalToCents(*p.Limit)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid limit")
			return
		}
		patch.Limit = &core.Money{Cents: cents}
	}
	if p.DueDay != nil && (*p.DueDay < 1 || *p.DueDay > 31) {
		s.writeError(w, http.StatusUnprocessableEntity, "due day must be between 1 and 31")
		return
	}

	updated, ok := s.book.UpdateCard(r.Context(), r.PathValue("id"), patch)
	if !ok {
		s.writeError(w, http.StatusNotFound, "card not found")
		return
	}
	s.writeJSON(w, http.StatusOK, toCardResponse(updated))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if !s.book.RemoveCard(r.Context(), r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "card not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards := s.book.Cards()
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	s.writeJSON(w, http.StatusOK, out)
}
