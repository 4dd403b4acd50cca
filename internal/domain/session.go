package domain

import "time"

// SessionRecord is one entry of the append-only session log.
type SessionRecord struct {
	ID        string      `json:"id,omitempty"`
	Type      SessionType `json:"type"`
	Task      string      `json:"task"`
	Duration  int         `json:"duration"`
	Completed bool        `json:"completed"`
	Timestamp Timestamp   `json:"timestamp"`
}

// NewPomodoroRecord builds the record written when a pomodoro finishes.
// An empty task name is attributed to GeneralWork.
func NewPomodoroRecord(task string, duration time.Duration, now time.Time) SessionRecord {
	if task == "" {
		task = GeneralWork
	}
	return SessionRecord{
		Type:      SessionPomodoro,
		Task:      task,
		Duration:  int(duration / time.Second),
		Completed: true,
		Timestamp: NewTimestamp(now),
	}
}

// CountsAsPomodoro reports whether the record is a completed pomodoro.
func (s SessionRecord) CountsAsPomodoro() bool {
	return s.Type == SessionPomodoro && s.Completed
}

// DayIn returns the calendar date of the record as seen from loc.
func (s SessionRecord) DayIn(loc *time.Location) Date {
	return DateOf(s.Timestamp.Time().In(loc))
}
