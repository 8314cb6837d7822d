package http

import (
	"net/http"
	"strconv"
	"time"

	"grana/internal/report"
)

func summaryKey(year int, month time.Month) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(int(month))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key := summaryKey(year, month)
	if ov, ok := s.summaryCache.Get(key); ok {
		s.writeJSON(w, http.StatusOK, ov)
		return
	}
	ov := report.BuildMonthOverview(s.book, year, month)
	s.summaryCache.Set(key, ov)
	s.writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.book.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.book.Settings()
	if err := decodeJSON(w, r, &settings); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.book.UpdateSettings(r.Context(), settings)
	s.writeJSON(w, http.StatusOK, settings)
}
