// Package stats derives productivity figures (counts, focus time, streaks,
// best day, per-task breakdown) from the session log.
package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
)

// Engine computes aggregates over a Log. It holds no state of its own.
type Engine struct {
	log *Log
	now func() time.Time
}

func NewEngine(log *Log, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{log: log, now: now}
}

// Log returns the session log the engine reads.
func (e *Engine) Log() *Log { return e.log }

func (e *Engine) today() domain.Date {
	return domain.DateOf(e.now())
}

func (e *Engine) loc() *time.Location {
	return e.now().Location()
}

// SessionsOn returns the records whose timestamp falls on date.
func (e *Engine) SessionsOn(date domain.Date) []domain.SessionRecord {
	loc := e.loc()
	var out []domain.SessionRecord
	for _, s := range e.log.sessions {
		if s.DayIn(loc) == date {
			out = append(out, s)
		}
	}
	return out
}

// SessionsSince returns the records dated on or after date.
func (e *Engine) SessionsSince(date domain.Date) []domain.SessionRecord {
	loc := e.loc()
	var out []domain.SessionRecord
	for _, s := range e.log.sessions {
		if !s.DayIn(loc).Before(date) {
			out = append(out, s)
		}
	}
	return out
}

// Today returns today's records.
func (e *Engine) Today() []domain.SessionRecord {
	return e.SessionsOn(e.today())
}

// WeekStart returns the Monday of the current week.
func (e *Engine) WeekStart() domain.Date {
	today := e.today()
	offset := (int(e.now().Weekday()) + 6) % 7
	return today.AddDays(-offset)
}

// ThisWeek returns the records since Monday.
func (e *Engine) ThisWeek() []domain.SessionRecord {
	return e.SessionsSince(e.WeekStart())
}

// PomodoroCount counts completed pomodoros in sessions.
func PomodoroCount(sessions []domain.SessionRecord) int {
	n := 0
	for _, s := range sessions {
		if s.CountsAsPomodoro() {
			n++
		}
	}
	return n
}

// FocusTime sums the duration of completed pomodoros in sessions.
func FocusTime(sessions []domain.SessionRecord) time.Duration {
	total := 0
	for _, s := range sessions {
		if s.CountsAsPomodoro() {
			total += s.Duration
		}
	}
	return time.Duration(total) * time.Second
}

// TotalFocusTime formats FocusTime as "Hh Mm", omitting hours when zero.
func TotalFocusTime(sessions []domain.SessionRecord) string {
	return FormatDuration(FocusTime(sessions))
}

// FormatDuration renders d as "Hh Mm", or "Mm" under an hour. Seconds are
// dropped.
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// pomodoroDays counts completed pomodoros per calendar day.
func (e *Engine) pomodoroDays() map[domain.Date]int {
	loc := e.loc()
	days := make(map[domain.Date]int)
	for _, s := range e.log.sessions {
		if s.CountsAsPomodoro() {
			days[s.DayIn(loc)]++
		}
	}
	return days
}

// Streak counts consecutive days with at least one completed pomodoro,
// walking back from today. A day without pomodoros today means 0.
func (e *Engine) Streak() int {
	days := e.pomodoroDays()
	streak := 0
	for day := e.today(); days[day] > 0; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// DayCount pairs a date with its completed-pomodoro count.
type DayCount struct {
	Date      domain.Date `json:"date"`
	Pomodoros int         `json:"pomodoros"`
}

// BestDay returns the date with the most completed pomodoros. Ties go to the
// earliest date. It reports false when there are none.
func (e *Engine) BestDay() (DayCount, bool) {
	var best DayCount
	found := false
	for day, n := range e.pomodoroDays() {
		if !found || n > best.Pomodoros || (n == best.Pomodoros && day.Before(best.Date)) {
			best = DayCount{Date: day, Pomodoros: n}
			found = true
		}
	}
	return best, found
}

// TaskTotals aggregates pomodoros attributed to one task name.
type TaskTotals struct {
	Task     string        `json:"task"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"-"`
	Seconds  int           `json:"time"`
}

// TaskBreakdown maps task name to its pomodoro count and total duration.
// Records without a task name count as general work.
func (e *Engine) TaskBreakdown() map[string]TaskTotals {
	out := make(map[string]TaskTotals)
	for _, s := range e.log.sessions {
		if !s.CountsAsPomodoro() {
			continue
		}
		name := cmp.Or(s.Task, domain.GeneralWork)
		t := out[name]
		t.Task = name
		t.Count++
		t.Seconds += s.Duration
		t.Duration = time.Duration(t.Seconds) * time.Second
		out[name] = t
	}
	return out
}

// TopTasks returns up to n tasks ordered by count descending, then name.
func (e *Engine) TopTasks(n int) []TaskTotals {
	breakdown := e.TaskBreakdown()
	out := make([]TaskTotals, 0, len(breakdown))
	for _, t := range breakdown {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b TaskTotals) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Task, b.Task)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// WeekdayCount is one bar of the weekly chart.
type WeekdayCount struct {
	Day       time.Weekday
	Pomodoros int
}

// WeeklyChart returns completed-pomodoro counts for Monday..Sunday of the
// current week.
func (e *Engine) WeeklyChart() []WeekdayCount {
	days := e.pomodoroDays()
	start := e.WeekStart()
	out := make([]WeekdayCount, 7)
	for i := range out {
		day := start.AddDays(i)
		out[i] = WeekdayCount{
			Day:       time.Weekday((i + 1) % 7),
			Pomodoros: days[day],
		}
	}
	return out
}
