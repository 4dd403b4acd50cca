package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const (
	menuStart    = "start"
	menuTasks    = "tasks"
	menuStats    = "stats"
	menuSettings = "settings"
	menuExit     = "exit"
	menuBack     = "back"
)

// shell is the interactive menu session opened by a bare "pomo" on a TTY.
type shell struct {
	cmd *cobra.Command
	app *App
	ctx context.Context
}

func runShell(cmd *cobra.Command, app *App) error {
	app.bind(cmd)
	s := &shell{cmd: cmd, app: app, ctx: cmd.Context()}
	s.println(formatter.RenderBox("🍅 Pomodoro timer", "Stay focused, stay productive"))

	for {
		choice, err := s.menu("Main menu",
			huh.NewOption("Start pomodoro", menuStart),
			huh.NewOption("Manage tasks", menuTasks),
			huh.NewOption("View statistics", menuStats),
			huh.NewOption("Settings", menuSettings),
			huh.NewOption("Exit", menuExit),
		)
		if err != nil {
			return err
		}

		switch choice {
		case menuStart:
			err = s.start()
		case menuTasks:
			err = s.tasks()
		case menuStats:
			err = s.stats()
		case menuSettings:
			err = s.settings()
		default:
			s.println(formatter.StyleHeader.Render("Goodbye! Stay productive! 🍅"))
			return nil
		}
		if err != nil {
			if s.ctx.Err() != nil {
				return s.ctx.Err()
			}
			s.println(formatter.Failure(err.Error()))
		}
	}
}

func (s *shell) println(text string) {
	fmt.Fprintln(s.cmd.OutOrStdout(), text)
}

// run executes a form. An aborted form (Esc or Ctrl+C) reports ok=false.
func (s *shell) run(form *huh.Form) (bool, error) {
	err := s.app.Terminal.runForm(s.ctx, form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return err == nil, err
}

// menu shows a select and returns the chosen value. Aborting picks the last
// option, which is always Back or Exit.
func (s *shell) menu(title string, options ...huh.Option[string]) (string, error) {
	choice := options[len(options)-1].Value
	ok, err := s.run(wizardMenu(title, options, &choice))
	if err != nil {
		return "", err
	}
	if !ok {
		return options[len(options)-1].Value, nil
	}
	return choice, nil
}

// pickTask lets the user choose a task matching keep. It returns the
// registry index, or -1 when nothing was chosen.
func (s *shell) pickTask(title string, keep func(domain.Task) bool, allowNone bool) (int, error) {
	var list []domain.Task
	var positions []int
	for i, t := range s.app.Tasks.All() {
		if keep == nil || keep(t) {
			list = append(list, t)
			positions = append(positions, i+1)
		}
	}
	if len(list) == 0 && !allowNone {
		s.println(formatter.Info("No matching tasks."))
		return -1, nil
	}
	if len(list) == 0 {
		return -1, nil
	}

	choice := noTask
	if !allowNone {
		choice = positions[0]
	}
	ok, err := s.run(wizardSelectTask(title, list, positions, allowNone, &choice))
	if err != nil || !ok || choice == noTask {
		return -1, err
	}
	return choice - 1, nil
}

func isPending(t domain.Task) bool   { return !t.Completed }
func isCompleted(t domain.Task) bool { return t.Completed }

func (s *shell) start() error {
	index, err := s.pickTask("Select task to work on", isPending, true)
	if err != nil {
		return err
	}
	task := taskAt(s.app, index)
	if task == nil {
		if len(s.app.Tasks.Pending()) == 0 {
			s.println(formatter.Info("No tasks yet. Starting general pomodoro session."))
		}
	} else {
		s.println(formatter.Info("Working on: " + task.Name))
	}

	if err := s.app.Terminal.Acknowledge(s.ctx, "Press ENTER to start timer..."); err != nil {
		return nil
	}
	return s.app.Timer.Run(s.ctx, task)
}

func (s *shell) tasks() error {
	for {
		choice, err := s.menu("Task management",
			huh.NewOption("View all tasks", "view"),
			huh.NewOption("Add new task", "add"),
			huh.NewOption("Complete task", "complete"),
			huh.NewOption("Reopen task", "reopen"),
			huh.NewOption("Rename task", "rename"),
			huh.NewOption("Change priority", "priority"),
			huh.NewOption("Delete task", "delete"),
			huh.NewOption("Search", "search"),
			huh.NewOption("Sort by priority", "sort-priority"),
			huh.NewOption("Sort by date", "sort-date"),
			huh.NewOption("Clear completed", "clear"),
			huh.NewOption("Export", "export"),
			huh.NewOption("Back to main menu", menuBack),
		)
		if err != nil {
			return err
		}
		if choice == menuBack {
			return nil
		}
		if err := s.taskAction(choice); err != nil {
			return err
		}
	}
}

func (s *shell) taskAction(choice string) error {
	ctx := s.ctx
	reg := s.app.Tasks

	switch choice {
	case "view":
		s.println(formatter.FormatTaskTable(reg.All(), s.app.now(), nil))
		if reg.Len() > 0 {
			s.println(formatter.FormatTaskSummary(reg.Stats()))
		}

	case "add":
		var name, priority string
		if ok, err := s.run(wizardInputText("Task name", "What are you working on?", true, &name)); !ok {
			return err
		}
		if ok, err := s.run(wizardSelectPriority(&priority)); !ok {
			return err
		}
		task, err := reg.Add(ctx, name, domain.Priority(priority))
		if err := warnPersist(s.cmd, err); err != nil {
			return err
		}
		s.println(formatter.Success("Task added: " + task.Name))

	case "complete", "reopen", "rename", "priority", "delete":
		return s.editTask(choice)

	case "search":
		var keyword string
		if ok, err := s.run(wizardInputText("Search", "keyword", true, &keyword)); !ok {
			return err
		}
		ids := map[int]bool{}
		for _, t := range reg.Search(keyword) {
			ids[t.ID] = true
		}
		s.println(formatter.FormatTaskTable(reg.All(), s.app.now(), func(t domain.Task) bool { return ids[t.ID] }))

	case "sort-priority":
		if err := warnPersist(s.cmd, reg.SortByPriority(ctx)); err != nil {
			return err
		}
		s.println(formatter.Success("Tasks sorted by priority"))

	case "sort-date":
		if err := warnPersist(s.cmd, reg.SortByDate(ctx)); err != nil {
			return err
		}
		s.println(formatter.Success("Tasks sorted by date"))

	case "clear":
		n, err := reg.ClearCompleted(ctx)
		if err := warnPersist(s.cmd, err); err != nil {
			return err
		}
		s.println(formatter.Success(fmt.Sprintf("Removed %d completed task(s)", n)))

	case "export":
		path := tasksExportFile
		exp, err := reg.Export(path)
		if err != nil {
			return fmt.Errorf("exporting tasks: %w", err)
		}
		s.println(formatter.Success(fmt.Sprintf("Exported %d tasks to %s", exp.TotalTasks, path)))
	}
	return nil
}

func (s *shell) editTask(action string) error {
	ctx := s.ctx
	reg := s.app.Tasks

	var keep func(domain.Task) bool
	switch action {
	case "complete":
		keep = isPending
	case "reopen":
		keep = isCompleted
	}
	index, err := s.pickTask("Select task", keep, false)
	if err != nil || index < 0 {
		return err
	}
	task, _ := reg.Get(index)

	var changed bool
	switch action {
	case "complete":
		changed, err = reg.Complete(ctx, index)
	case "reopen":
		changed, err = reg.Uncomplete(ctx, index)
	case "rename":
		name := task.Name
		ok, ferr := s.run(wizardInputText("New name", task.Name, true, &name))
		if !ok {
			return ferr
		}
		changed, err = reg.EditName(ctx, index, name)
	case "priority":
		priority := string(task.Priority)
		ok, ferr := s.run(wizardSelectPriority(&priority))
		if !ok {
			return ferr
		}
		changed, err = reg.SetPriority(ctx, index, domain.Priority(priority))
	case "delete":
		var confirm bool
		if ok, ferr := s.run(wizardConfirm(fmt.Sprintf("Delete %q?", task.Name), &confirm)); !ok || !confirm {
			return ferr
		}
		_, changed, err = reg.Delete(ctx, index)
	}
	if err := warnPersist(s.cmd, err); err != nil {
		return err
	}
	if changed {
		s.println(formatter.Success(fmt.Sprintf("Updated: %s", task.Name)))
	}
	return nil
}

func (s *shell) stats() error {
	printStats(s.cmd, s.app, true)
	for {
		choice, err := s.menu("Statistics",
			huh.NewOption("Export statistics", "export"),
			huh.NewOption("Clear session history", "clear"),
			huh.NewOption("Back to main menu", menuBack),
		)
		if err != nil || choice == menuBack {
			return err
		}

		switch choice {
		case "export":
			path := statsExportFile
			exp, err := s.app.Stats.Export(path)
			if err != nil {
				return fmt.Errorf("exporting statistics: %w", err)
			}
			s.println(formatter.Success(fmt.Sprintf("Exported %d sessions to %s", exp.TotalSessions, path)))
		case "clear":
			var confirm bool
			ok, err := s.run(wizardConfirm("Delete the whole session history?", &confirm))
			if err != nil {
				return err
			}
			if ok && confirm {
				if err := s.app.Log.Clear(s.ctx); err != nil {
					return fmt.Errorf("clearing sessions: %w", err)
				}
				s.println(formatter.Success("Session history cleared"))
			}
		}
	}
}

// Settings fields edited from the menu.
const (
	settingPomodoro   = "pomodoro"
	settingShortBreak = "short"
	settingLongBreak  = "long"
	settingEvery      = "every"
	settingReset      = "reset"
)

func (s *shell) settings() error {
	for {
		cfg := s.app.Timer.Config()
		s.println(formatter.Header("Settings"))
		s.println(formatter.FormatTimerSettings(cfg))

		choice, err := s.menu("Change a setting",
			huh.NewOption("Pomodoro duration", settingPomodoro),
			huh.NewOption("Short break duration", settingShortBreak),
			huh.NewOption("Long break duration", settingLongBreak),
			huh.NewOption("Pomodoros until long break", settingEvery),
			huh.NewOption("Reset to default", settingReset),
			huh.NewOption("Back to main menu", menuBack),
		)
		if err != nil || choice == menuBack {
			return err
		}
		if choice == settingReset {
			s.app.Timer.ResetToDefault()
			s.println(formatter.Success("Durations reset to 25/5/15 minutes"))
			continue
		}

		title, current := settingPrompt(cfg, choice)
		var value string
		ok, err := s.run(wizardInputMinutes(title, current, &value))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := applySetting(s.app.Timer, choice, value); err != nil {
			s.println(formatter.Failure(err.Error()))
			continue
		}
		s.println(formatter.Success("Setting updated"))
	}
}

func settingPrompt(cfg timer.Config, field string) (string, int) {
	switch field {
	case settingShortBreak:
		return "Short break duration (minutes)", int(cfg.ShortBreak.Minutes())
	case settingLongBreak:
		return "Long break duration (minutes)", int(cfg.LongBreak.Minutes())
	case settingEvery:
		return "Pomodoros until long break", cfg.PomodorosUntilLongBreak
	default:
		return "Pomodoro duration (minutes)", int(cfg.Pomodoro.Minutes())
	}
}

// applySetting parses value as a positive whole number and stores it in the
// named field. Durations are in minutes.
func applySetting(m *timer.Machine, field, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid input %q: enter a positive number", value)
	}

	cfg := m.Config()
	minutes := time.Duration(n) * time.Minute
	switch field {
	case settingPomodoro:
		cfg.Pomodoro = minutes
	case settingShortBreak:
		cfg.ShortBreak = minutes
	case settingLongBreak:
		cfg.LongBreak = minutes
	case settingEvery:
		cfg.PomodorosUntilLongBreak = n
	default:
		return fmt.Errorf("unknown setting %q", field)
	}
	return m.SetConfig(cfg)
}
