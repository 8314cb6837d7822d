package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"grana/internal/core"
)

// taskLedger owns the task records with their nested subtasks.
type taskLedger struct {
	tasks []core.Task
}

// TaskPatch is a partial task update. A non-nil Subtasks replaces the
// whole checklist; individual completion flips go through toggleSubtask.
type TaskPatch struct {
	Title    *string
	Date     *core.Date
	Time     *string
	Category *core.TaskCategory
	Subtasks *[]core.Subtask
	Notes    *string
}

func (l *taskLedger) add(t core.Task) core.Task {
	t.ID = uuid.NewString()
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == "" {
			t.Subtasks[i].ID = uuid.NewString()
		}
	}
	l.tasks = append(l.tasks, t)
	return t.Clone()
}

func (l *taskLedger) remove(id string) (core.Task, bool) {
	for i, t := range l.tasks {
		if t.ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return t, true
		}
	}
	return core.Task{}, false
}

func (l *taskLedger) update(id string, p TaskPatch) (core.Task, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID != id {
			continue
		}
		t := &l.tasks[i]
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Date != nil {
			t.Date = *p.Date
		}
		if p.Time != nil {
			t.Time = *p.Time
		}
		if p.Category != nil {
			t.Category = *p.Category
		}
		if p.Subtasks != nil {
			subs := append([]core.Subtask(nil), (*p.Subtasks)...)
			for j := range subs {
				if subs[j].ID == "" {
					subs[j].ID = uuid.NewString()
				}
			}
			t.Subtasks = subs
		}
		if p.Notes != nil {
			t.Notes = *p.Notes
		}
		return t.Clone(), true
	}
	return core.Task{}, false
}

// toggleSubtask flips the completed flag on exactly the matching subtask.
// Missing task or subtask ids are a no-op.
func (l *taskLedger) toggleSubtask(taskID, subtaskID string) (core.Task, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID != taskID {
			continue
		}
		for j := range l.tasks[i].Subtasks {
			if l.tasks[i].Subtasks[j].ID == subtaskID {
				l.tasks[i].Subtasks[j].Completed = !l.tasks[i].Subtasks[j].Completed
				return l.tasks[i].Clone(), true
			}
		}
		return core.Task{}, false
	}
	return core.Task{}, false
}

func (l *taskLedger) get(id string) (core.Task, bool) {
	for _, t := range l.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return core.Task{}, false
}

func (l *taskLedger) list() []core.Task {
	out := make([]core.Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.Clone()
	}
	return out
}

const upcomingLimit = 5

// upcoming returns tasks dated today or later, ascending, capped at five.
// Time-of-day never factors in; dates are already day-granular.
func (l *taskLedger) upcoming(from core.Date) []core.Task {
	var out []core.Task
	for _, t := range l.tasks {
		if !t.Date.Before(from.Time) {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

func (l *taskLedger) byCategory(c core.TaskCategory) []core.Task {
	var out []core.Task
	for _, t := range l.tasks {
		if t.Category == c {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (l *taskLedger) byDate(date core.Date) []core.Task {
	var out []core.Task
	for _, t := range l.tasks {
		if t.Date.Equal(date.Time) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// forMonth groups the month's tasks by their date string. Dates without
// tasks are absent from the map.
func (l *taskLedger) forMonth(year int, month time.Month) map[string][]core.Task {
	out := make(map[string][]core.Task)
	for _, t := range l.tasks {
		if t.Date.In(year, month) {
			key := t.Date.String()
			out[key] = append(out[key], t.Clone())
		}
	}
	return out
}
