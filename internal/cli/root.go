package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/stats"
	"github.com/alexanderramin/pomo/internal/store"
	"github.com/alexanderramin/pomo/internal/tasks"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/spf13/cobra"
)

// App holds the components shared by every command.
type App struct {
	Config   *config.Config
	Tasks    *tasks.Registry
	Log      *stats.Log
	Stats    *stats.Engine
	Timer    *timer.Machine
	Terminal *Terminal
	// Journal is set when the backend records collection writes.
	Journal store.Journal

	// IsInteractive reports whether stdin is a terminal. The bare "pomo"
	// command opens the menu shell only when it returns true.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// bind points the terminal at the running command's streams.
func (a *App) bind(cmd *cobra.Command) {
	if a.Terminal != nil {
		a.Terminal.Bind(cmd.InOrStdin(), cmd.OutOrStdout())
	}
}

// NewRootCmd creates the top-level "pomo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "pomo",
		Short:        "Pomodoro timer with tasks and statistics",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runShell(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStartCmd(app),
		newTaskCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
	)

	return root
}

// warnPersist prints persistence failures as warnings and swallows them; the
// in-memory change already happened. Other errors are returned.
func warnPersist(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var pe *tasks.PersistError
	if errors.As(err, &pe) {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(pe.Error()))
		return nil
	}
	return err
}

// parsePosition converts a 1-based task number into a registry index.
func parsePosition(app *App, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	return positionIndex(app, n)
}

func positionIndex(app *App, n int) (int, error) {
	if n < 1 || n > app.Tasks.Len() {
		return 0, fmt.Errorf("task %d not found (have %d)", n, app.Tasks.Len())
	}
	return n - 1, nil
}

// taskAt returns the task at a registry index, or nil for noTask.
func taskAt(app *App, index int) *domain.Task {
	t, ok := app.Tasks.Get(index)
	if !ok {
		return nil
	}
	return &t
}
