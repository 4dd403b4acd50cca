package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/pomo/internal/timer"
)

// SessionIcon returns the emoji shown beside a countdown.
func SessionIcon(kind timer.Kind) string {
	switch kind {
	case timer.KindShortBreak:
		return "☕"
	case timer.KindLongBreak:
		return "🌟"
	default:
		return "🍅"
	}
}

// FormatSessionHeader renders the box printed when a countdown starts.
func FormatSessionHeader(s timer.Status, today int) string {
	var lines []string
	if s.Kind == timer.KindPomodoro {
		lines = append(lines, "Task: "+Bold(s.Task))
	}
	lines = append(lines,
		fmt.Sprintf("Duration: %s", timer.FormatClock(s.Total)),
		fmt.Sprintf("Started at %s", s.StartedAt.Format("15:04:05")),
		fmt.Sprintf("Pomodoros completed today: %s", StyleGreen.Render(fmt.Sprint(today))),
		"",
		Dim("Press Ctrl+C to pause"),
	)
	title := fmt.Sprintf("%s %s", SessionIcon(s.Kind), timer.Label(s.Kind))
	return RenderBox(title, strings.Join(lines, "\n"))
}

// FormatTick renders the single status line redrawn every second.
func FormatTick(s timer.Status, bar string) string {
	clock := StyleBold.Render(s.Clock())
	return fmt.Sprintf("%s %s  Time remaining %s", SessionIcon(s.Kind), bar, clock)
}

// FormatEvent renders a timer transition. today is the number of pomodoros
// recorded today, used by the completion message.
func FormatEvent(e timer.Event, today int) string {
	switch e.Kind {
	case timer.EventPomodoroComplete:
		return StyleGreen.Bold(true).Render("🎉 Pomodoro Complete!") +
			fmt.Sprintf(" You've completed %s today!", Plural(today, "pomodoro"))
	case timer.EventBreakSelected:
		if e.Break == timer.KindLongBreak {
			return StylePurple.Render("🌟 Time for a LONG BREAK! You've earned it.")
		}
		return StyleBlue.Render("☕ Time for a short break.")
	case timer.EventBreakStarted:
		return ""
	case timer.EventBreakComplete:
		return Success("Break Complete! Time to get back to work.")
	case timer.EventBreakInterrupted:
		return Info("Break interrupted.")
	case timer.EventPaused:
		return StyleYellow.Render("⏸  Timer paused!")
	case timer.EventCountedAfterInterrupt:
		return Success("Session marked as complete!")
	case timer.EventCancelled:
		return Failure("Session cancelled.")
	case timer.EventWarning:
		if e.Err == nil {
			return ""
		}
		return Warning(e.Err.Error())
	default:
		return ""
	}
}

// FormatTimerSettings lists the current durations in minutes.
func FormatTimerSettings(cfg timer.Config) string {
	rows := [][]string{
		{"Pomodoro", FormatMinutes(int(cfg.Pomodoro.Minutes()))},
		{"Short break", FormatMinutes(int(cfg.ShortBreak.Minutes()))},
		{"Long break", FormatMinutes(int(cfg.LongBreak.Minutes()))},
		{"Long break every", Plural(cfg.PomodorosUntilLongBreak, "pomodoro")},
	}
	return RenderTable([]string{"SETTING", "VALUE"}, rows)
}

// FormatWriteCounts lists how often each collection has been written.
func FormatWriteCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, Plural(counts[name], "write"))
	}
	return b.String()
}
