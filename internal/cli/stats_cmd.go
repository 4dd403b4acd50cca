package cli

import (
	"fmt"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const topTaskCount = 5

func newStatsCmd(app *App) *cobra.Command {
	var exportPath string
	var weekChart bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show productivity statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if exportPath != "" {
				exp, err := app.Stats.Export(exportPath)
				if err != nil {
					return fmt.Errorf("exporting statistics: %w", err)
				}
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Exported %d sessions to %s", exp.TotalSessions, exportPath)))
				return nil
			}

			printStats(cmd, app, weekChart)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "Write sessions and summary to a JSON file")
	cmd.Flags().BoolVar(&weekChart, "week-chart", false, "Include a chart of this week's pomodoros")

	cmd.AddCommand(newStatsClearCmd(app))
	return cmd
}

func printStats(cmd *cobra.Command, app *App, weekChart bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatStatsSummary(app.Stats.Summary()))
	fmt.Fprintln(out, formatter.Header("🏆 Top tasks"))
	fmt.Fprint(out, formatter.FormatTopTasks(app.Stats.TopTasks(topTaskCount)))
	if weekChart {
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatWeeklyChart(app.Stats.WeeklyChart()))
	}
}

func newStatsClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				app.bind(cmd)
				ok, err := app.Terminal.Confirm(cmd.Context(), fmt.Sprintf("Delete all %d recorded sessions?", app.Log.Len()))
				if err != nil || !ok {
					fmt.Fprintln(out, formatter.Info("Nothing deleted."))
					return nil
				}
			}
			if err := app.Log.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing sessions: %w", err)
			}
			fmt.Fprintln(out, formatter.Success("Session history cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
