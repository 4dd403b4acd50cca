package testutil

import (
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.SessionRecord)

func WithTask(name string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Task = name
	}
}

func WithType(t domain.SessionType) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Type = t
	}
}

func WithDuration(seconds int) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Duration = seconds
	}
}

func Incomplete() SessionOption {
	return func(s *domain.SessionRecord) {
		s.Completed = false
	}
}

// NewTestSession builds a completed 25-minute pomodoro record at the given time.
func NewTestSession(at time.Time, opts ...SessionOption) domain.SessionRecord {
	s := domain.SessionRecord{
		ID:        uuid.New().String(),
		Type:      domain.SessionPomodoro,
		Task:      domain.GeneralWork,
		Duration:  1500,
		Completed: true,
		Timestamp: domain.NewTimestamp(at),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithPomodoros(n int) TaskOption {
	return func(t *domain.Task) {
		t.PomodorosSpent = n
	}
}

func CompletedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.MarkComplete(at)
	}
}

// NewTestTask builds a pending medium-priority task created at the given time.
func NewTestTask(id int, name string, created time.Time, opts ...TaskOption) domain.Task {
	t := domain.NewTask(id, name, domain.PriorityMedium, created)
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
