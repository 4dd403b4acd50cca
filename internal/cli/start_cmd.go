package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// noTask marks "work without a specific task" in pickers. Task positions
// start at 1.
const noTask = 0

type timerOverrides struct {
	minutes, short, long, every int
}

// apply changes only the settings whose flags were set.
func (o timerOverrides) apply(m *timer.Machine, flags *pflag.FlagSet) error {
	cfg := m.Config()
	if flags.Changed("minutes") {
		cfg.Pomodoro = time.Duration(o.minutes) * time.Minute
	}
	if flags.Changed("short") {
		cfg.ShortBreak = time.Duration(o.short) * time.Minute
	}
	if flags.Changed("long") {
		cfg.LongBreak = time.Duration(o.long) * time.Minute
	}
	if flags.Changed("every") {
		cfg.PomodorosUntilLongBreak = o.every
	}
	return m.SetConfig(cfg)
}

func newStartCmd(app *App) *cobra.Command {
	var over timerOverrides
	var taskNum int
	var once bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a pomodoro, followed by a break",
		Long: `Start a pomodoro countdown. When it completes a short or long break
follows and you are asked whether to start another. Press Ctrl+C to pause
the running countdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.bind(cmd)
			if err := over.apply(app.Timer, cmd.Flags()); err != nil {
				return err
			}

			var task *domain.Task
			if taskNum != noTask {
				index, err := positionIndex(app, taskNum)
				if err != nil {
					return err
				}
				task = taskAt(app, index)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Info("Working on: "+task.Name))
			}

			if once {
				_, err := app.Timer.RunPomodoro(cmd.Context(), task)
				return err
			}
			return app.Timer.Run(cmd.Context(), task)
		},
	}

	cmd.Flags().IntVar(&taskNum, "task", noTask, "Task number from 'pomo task list'")
	cmd.Flags().IntVar(&over.minutes, "minutes", 25, "Pomodoro length in minutes")
	cmd.Flags().IntVar(&over.short, "short", 5, "Short break length in minutes")
	cmd.Flags().IntVar(&over.long, "long", 15, "Long break length in minutes")
	cmd.Flags().IntVar(&over.every, "every", 4, "Pomodoros before a long break")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single pomodoro without a break")

	return cmd
}
