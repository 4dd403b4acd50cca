package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskUndoCmd(app),
		newTaskRemoveCmd(app),
		newTaskRenameCmd(app),
		newTaskPriorityCmd(app),
		newTaskSearchCmd(app),
		newTaskSortCmd(app),
		newTaskClearCmd(app),
		newTaskExportCmd(app),
	)

	return cmd
}

func parsePriority(s string) (domain.Priority, error) {
	p, ok := domain.ParsePriority(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("invalid priority %q (use high, medium or low)", s)
	}
	return p, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePriority(priority)
			if err != nil {
				return err
			}
			task, err := app.Tasks.Add(cmd.Context(), strings.Join(args, " "), p)
			if err := warnPersist(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Task added: %s", task.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(domain.PriorityMedium), "Priority: high, medium or low")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var pending, completed bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var keep func(domain.Task) bool
			switch {
			case pending && completed:
				return fmt.Errorf("--pending and --completed are mutually exclusive")
			case pending:
				keep = func(t domain.Task) bool { return !t.Completed }
			case completed:
				keep = func(t domain.Task) bool { return t.Completed }
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("📝 Your tasks"))
			fmt.Fprint(out, formatter.FormatTaskTable(app.Tasks.All(), app.now(), keep))
			if app.Tasks.Len() > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.FormatTaskSummary(app.Tasks.Stats()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Show only pending tasks")
	cmd.Flags().BoolVar(&completed, "completed", false, "Show only completed tasks")
	return cmd
}

// positionalTaskCmd builds the commands that take a task number and apply
// one registry mutation.
func positionalTaskCmd(app *App, use, short, done string, extraArgs int, fn func(cmd *cobra.Command, index int, args []string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1 + extraArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition(app, args[0])
			if err != nil {
				return err
			}
			name := app.Tasks.All()[index].Name
			ok, err := fn(cmd, index, args[1:])
			if err := warnPersist(cmd, err); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s unchanged", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s: %s", done, name)))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return positionalTaskCmd(app, "done N", "Mark a task as completed", "Task completed", 0,
		func(cmd *cobra.Command, index int, _ []string) (bool, error) {
			return app.Tasks.Complete(cmd.Context(), index)
		})
}

func newTaskUndoCmd(app *App) *cobra.Command {
	return positionalTaskCmd(app, "undo N", "Mark a completed task as pending again", "Task reopened", 0,
		func(cmd *cobra.Command, index int, _ []string) (bool, error) {
			return app.Tasks.Uncomplete(cmd.Context(), index)
		})
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	cmd := positionalTaskCmd(app, "rm N", "Delete a task", "Task deleted", 0,
		func(cmd *cobra.Command, index int, _ []string) (bool, error) {
			_, ok, err := app.Tasks.Delete(cmd.Context(), index)
			return ok, err
		})
	cmd.Aliases = []string{"delete"}
	return cmd
}

func newTaskRenameCmd(app *App) *cobra.Command {
	return positionalTaskCmd(app, "rename N NAME", "Rename a task", "Task renamed", 1,
		func(cmd *cobra.Command, index int, args []string) (bool, error) {
			return app.Tasks.EditName(cmd.Context(), index, args[0])
		})
}

func newTaskPriorityCmd(app *App) *cobra.Command {
	return positionalTaskCmd(app, "priority N high|medium|low", "Change a task's priority", "Priority updated", 1,
		func(cmd *cobra.Command, index int, args []string) (bool, error) {
			p, err := parsePriority(args[0])
			if err != nil {
				return false, err
			}
			return app.Tasks.SetPriority(cmd.Context(), index, p)
		})
}

func newTaskSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find tasks whose name contains a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := app.Tasks.Search(strings.Join(args, " "))
			ids := make(map[int]bool, len(matches))
			for _, t := range matches {
				ids[t.ID] = true
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d match(es)", len(matches))))
			fmt.Fprint(out, formatter.FormatTaskTable(app.Tasks.All(), app.now(), func(t domain.Task) bool {
				return ids[t.ID]
			}))
			return nil
		},
	}
}

func newTaskSortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "sort priority|date",
		Short:     "Reorder tasks by priority or by creation date",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"priority", "date"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "priority":
				err = app.Tasks.SortByPriority(cmd.Context())
			case "date":
				err = app.Tasks.SortByDate(cmd.Context())
			default:
				return fmt.Errorf("unknown sort key %q (use priority or date)", args[0])
			}
			if err := warnPersist(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Tasks sorted by "+args[0]))
			return nil
		},
	}
}

func newTaskClearCmd(app *App) *cobra.Command {
	var all, yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks, or every task with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !all {
				n, err := app.Tasks.ClearCompleted(cmd.Context())
				if err := warnPersist(cmd, err); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Removed %d completed task(s)", n)))
				return nil
			}

			if !yes {
				app.bind(cmd)
				ok, err := app.Terminal.Confirm(cmd.Context(), fmt.Sprintf("Delete all %d tasks?", app.Tasks.Len()))
				if err != nil || !ok {
					fmt.Fprintln(out, formatter.Info("Nothing deleted."))
					return nil
				}
			}
			if err := warnPersist(cmd, app.Tasks.ClearAll(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Success("All tasks cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every task, not just completed ones")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// Default export files are written to the working directory.
const (
	tasksExportFile = "tasks_export.json"
	statsExportFile = "stats_export.json"
)

func newTaskExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write tasks and their summary to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tasksExportFile
			if len(args) == 1 {
				path = args[0]
			}
			exp, err := app.Tasks.Export(path)
			if err != nil {
				return fmt.Errorf("exporting tasks: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Exported %d tasks to %s", exp.TotalTasks, path)))
			return nil
		},
	}
}
