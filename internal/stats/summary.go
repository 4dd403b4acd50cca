package stats

import (
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/store"
)

// Summary is the set of figures shown on the statistics screen.
type Summary struct {
	TodayPomodoros int       `json:"today_pomodoros"`
	TodayFocusTime string    `json:"today_focus_time"`
	WeekPomodoros  int       `json:"week_pomodoros"`
	WeekFocusTime  string    `json:"week_focus_time"`
	TotalPomodoros int       `json:"total_pomodoros"`
	TotalFocusTime string    `json:"total_focus_time"`
	Streak         int       `json:"streak"`
	BestDay        *DayCount `json:"best_day"`
}

// Summary computes every headline figure.
func (e *Engine) Summary() Summary {
	today := e.Today()
	week := e.ThisWeek()
	all := e.log.sessions

	s := Summary{
		TodayPomodoros: PomodoroCount(today),
		TodayFocusTime: TotalFocusTime(today),
		WeekPomodoros:  PomodoroCount(week),
		WeekFocusTime:  TotalFocusTime(week),
		TotalPomodoros: PomodoroCount(all),
		TotalFocusTime: TotalFocusTime(all),
		Streak:         e.Streak(),
	}
	if best, ok := e.BestDay(); ok {
		s.BestDay = &best
	}
	return s
}

// ExportSummary is the summary block of an export snapshot.
type ExportSummary struct {
	TotalPomodoros int       `json:"total_pomodoros"`
	TotalFocusTime string    `json:"total_focus_time"`
	Streak         int       `json:"streak"`
	BestDay        *DayCount `json:"best_day"`
}

// Export is the snapshot written by (*Engine).Export. It is never read back.
type Export struct {
	ExportedAt    domain.Timestamp       `json:"exported_at"`
	TotalSessions int                    `json:"total_sessions"`
	Sessions      []domain.SessionRecord `json:"sessions"`
	Summary       ExportSummary          `json:"summary"`
}

// Snapshot builds the export document without writing it.
func (e *Engine) Snapshot() Export {
	sum := e.Summary()
	return Export{
		ExportedAt:    domain.NewTimestamp(e.now()),
		TotalSessions: e.log.Len(),
		Sessions:      e.log.Sessions(),
		Summary: ExportSummary{
			TotalPomodoros: sum.TotalPomodoros,
			TotalFocusTime: sum.TotalFocusTime,
			Streak:         sum.Streak,
			BestDay:        sum.BestDay,
		},
	}
}

// Export writes the session log and its summary to path.
func (e *Engine) Export(path string) (Export, error) {
	snap := e.Snapshot()
	return snap, store.WriteSnapshot(path, snap)
}
