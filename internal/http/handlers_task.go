package http

import (
	"net/http"

	"grana/internal/core"
	"grana/internal/ledger"
)

type taskPayload struct {
	Title    *string         `json:"title"`
	Date     *string         `json:"date"`
	Time     *string         `json:"time"`
	Category *string         `json:"category"`
	Subtasks *[]core.Subtask `json:"subtasks"`
	Notes    *string         `json:"notes"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Title == nil || p.Date == nil || p.Category == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "title, date and category are required")
		return
	}
	date, err := core.ParseDate(*p.Date)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	t := core.Task{
		Title:    sanitize(*p.Title),
		Date:     date,
		Category: core.TaskCategory(*p.Category),
	}
	if p.Time != nil {
		t.Time = sanitize(*p.Time)
	}
	if p.Subtasks != nil {
		t.Subtasks = *p.Subtasks
	}
	if p.Notes != nil {
		t.Notes = sanitize(*p.Notes)
	}
	if err := t.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created := s.book.AddTask(r.Context(), t)
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := ledger.TaskPatch{Subtasks: p.Subtasks}
	if p.Title != nil {
		title := sanitize(*p.Title)
		if title == "" {
			s.writeError(w, http.StatusUnprocessableEntity, "title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if p.Date != nil {
		date, err := core.ParseDate(*p.Date)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}
	if p.Time != nil {
		t := sanitize(*p.Time)
		patch.Time = &t
	}
	if p.Category != nil {
		cat := core.TaskCategory(*p.Category)
		if !cat.Valid() {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid category")
			return
		}
		patch.Category = &cat
	}
	if p.Notes != nil {
		notes := sanitize(*p.Notes)
		patch.Notes = &notes
	}

	updated, ok := s.book.UpdateTask(r.Context(), r.PathValue("id"), patch)
	if !ok {
		s.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.book.RemoveTask(r.Context(), r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	updated, ok := s.book.ToggleSubtask(r.Context(), r.PathValue("id"), r.PathValue("subtaskID"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "task or subtask not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		category := core.TaskCategory(cat)
		if !category.Valid() {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid category")
			return
		}
		s.writeJSON(w, http.StatusOK, nonNilTasks(s.book.TasksByCategory(category)))
		return
	}
	if d := r.URL.Query().Get("date"); d != "" {
		date, err := core.ParseDate(d)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		s.writeJSON(w, http.StatusOK, nonNilTasks(s.book.TasksByDate(date)))
		return
	}
	s.writeJSON(w, http.StatusOK, nonNilTasks(s.book.Tasks()))
}

func (s *Server) handleUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, nonNilTasks(s.book.UpcomingTasks(core.Today())))
}

func (s *Server) handleTaskCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.book.TasksForMonth(year, month))
}

func nonNilTasks(tasks []core.Task) []core.Task {
	if tasks == nil {
		return []core.Task{}
	}
	return tasks
}
