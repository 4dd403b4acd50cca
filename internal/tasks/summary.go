package tasks

import (
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/store"
)

// Summary aggregates the task list.
type Summary struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	TotalPomodoros int     `json:"total_pomodoros"`
}

// Stats summarises the current task list. CompletionRate is a percentage.
func (r *Registry) Stats() Summary {
	var s Summary
	s.Total = len(r.tasks)
	for _, t := range r.tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		s.TotalPomodoros += t.PomodorosSpent
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// Export is the snapshot written by (*Registry).Export. It is never read back.
type Export struct {
	ExportedAt domain.Timestamp `json:"exported_at"`
	TotalTasks int              `json:"total_tasks"`
	Tasks      []domain.Task    `json:"tasks"`
	Stats      Summary          `json:"stats"`
}

// Export writes the task list and its summary to path.
func (r *Registry) Export(path string) (Export, error) {
	snap := Export{
		ExportedAt: domain.NewTimestamp(r.now()),
		TotalTasks: len(r.tasks),
		Tasks:      r.All(),
		Stats:      r.Stats(),
	}
	if err := store.WriteSnapshot(path, snap); err != nil {
		return snap, err
	}
	return snap, nil
}
