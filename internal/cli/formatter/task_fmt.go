package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/tasks"
)

// FormatTaskTable lists tasks numbered by their position (1-based), which is
// the number the task subcommands accept. When keep is non-nil only the
// tasks it accepts are shown; numbering still follows the full list.
func FormatTaskTable(list []domain.Task, now time.Time, keep func(domain.Task) bool) string {
	if len(list) == 0 {
		return Info("No tasks yet. Add some tasks to get started!") + "\n"
	}

	headers := []string{"#", "TASK", "PRIORITY", "🍅", "STATUS", "CREATED"}
	rows := make([][]string, 0, len(list))
	for i, t := range list {
		if keep != nil && !keep(t) {
			continue
		}
		status := StyleYellow.Render("☐ pending")
		if t.Completed {
			status = StyleGreen.Render("☑ done")
		}
		name := Truncate(t.Name, 48)
		if t.Completed {
			name = Dim(name)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			PriorityBadge(t.Priority),
			strconv.Itoa(t.PomodorosSpent),
			status,
			HumanDate(t.CreatedAt.Time(), now),
		})
	}
	if len(rows) == 0 {
		return Dim("No matching tasks.") + "\n"
	}
	return RenderTable(headers, rows)
}

// FormatTaskSummary renders the counts line under a task list.
func FormatTaskSummary(s tasks.Summary) string {
	return fmt.Sprintf("Total: %d tasks (%d pending, %d completed)  %s  %s",
		s.Total, s.Pending, s.Completed,
		RenderProgress(s.CompletionRate/100, 10),
		Dim(Plural(s.TotalPomodoros, "pomodoro")))
}

// FormatTaskChoice is the one-line label used in task pickers.
func FormatTaskChoice(t domain.Task) string {
	var b strings.Builder
	b.WriteString(t.Name)
	if t.PomodorosSpent > 0 {
		fmt.Fprintf(&b, " (%d 🍅)", t.PomodorosSpent)
	}
	fmt.Fprintf(&b, " [%s]", t.Priority)
	return b.String()
}
