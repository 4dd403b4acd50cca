package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Priority       Priority   `json:"priority"`
	Completed      bool       `json:"completed"`
	CreatedAt      Timestamp  `json:"created_at"`
	CompletedAt    *Timestamp `json:"completed_at"`
	PomodorosSpent int        `json:"pomodoros_spent"`
}

// NewTask builds a pending task with the default fields filled in.
func NewTask(id int, name string, priority Priority, now time.Time) Task {
	if !ValidPriorities[priority] {
		priority = PriorityMedium
	}
	return Task{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Priority:  priority,
		CreatedAt: NewTimestamp(now),
	}
}

// MarkComplete sets Completed and stamps CompletedAt.
func (t *Task) MarkComplete(now time.Time) {
	ts := NewTimestamp(now)
	t.Completed = true
	t.CompletedAt = &ts
}

// MarkIncomplete clears Completed and CompletedAt.
func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.CompletedAt = nil
}

// Normalize fills defaults for fields missing from older files.
func (t *Task) Normalize() {
	if !ValidPriorities[t.Priority] {
		t.Priority = PriorityMedium
	}
	if t.PomodorosSpent < 0 {
		t.PomodorosSpent = 0
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
}
