package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pomo/internal/stats"
)

const chartWidth = 20

// FormatStatsSummary renders today, this week, all time and the best day.
func FormatStatsSummary(s stats.Summary) string {
	var b strings.Builder

	section := func(title string, lines ...string) {
		b.WriteString("\n" + Bold(title) + "\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}

	section("Today",
		fmt.Sprintf("🍅 Pomodoros completed: %s", StyleGreen.Render(fmt.Sprint(s.TodayPomodoros))),
		fmt.Sprintf("⏱️  Focus time: %s", StyleBlue.Render(s.TodayFocusTime)),
	)
	section("This Week",
		fmt.Sprintf("🍅 Pomodoros completed: %s", StyleGreen.Render(fmt.Sprint(s.WeekPomodoros))),
		fmt.Sprintf("⏱️  Focus time: %s", StyleBlue.Render(s.WeekFocusTime)),
	)
	section("All Time",
		fmt.Sprintf("🍅 Total pomodoros: %s", StyleGreen.Render(fmt.Sprint(s.TotalPomodoros))),
		fmt.Sprintf("⏱️  Total focus time: %s", StyleBlue.Render(s.TotalFocusTime)),
		fmt.Sprintf("🔥 Current streak: %s", StyleYellow.Render(Plural(s.Streak, "day"))),
	)
	if s.BestDay != nil {
		section("Best Day",
			"📅 "+s.BestDay.Date.String(),
			"🍅 "+Plural(s.BestDay.Pomodoros, "pomodoro"),
		)
	}
	return Header("📊 Productivity statistics") + "\n" + b.String()
}

// FormatTopTasks renders the task breakdown as a table.
func FormatTopTasks(top []stats.TaskTotals) string {
	if len(top) == 0 {
		return Dim("No pomodoros recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(top))
	for i, t := range top {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			Truncate(t.Task, 40),
			Plural(t.Count, "pomodoro"),
			stats.FormatDuration(t.Duration),
		})
	}
	return RenderTable([]string{"", "TASK", "POMODOROS", "FOCUS"}, rows)
}

// FormatWeeklyChart renders one bar per weekday, Monday first. The busiest
// day fills the chart width.
func FormatWeeklyChart(days []stats.WeekdayCount) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Pomodoros)
	}

	var b strings.Builder
	b.WriteString(Header("📈 This week") + "\n")
	for _, d := range days {
		n := BarLength(d.Pomodoros, peak, chartWidth)
		bar := StyleHeader.Render(strings.Repeat(filledBlock, n)) + strings.Repeat(" ", chartWidth-n)
		fmt.Fprintf(&b, "%s: %s %d\n", d.Day.String()[:3], bar, d.Pomodoros)
	}
	return b.String()
}
