package cli

import (
	"fmt"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/store"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and timer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.Config.YAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Configuration"))
			fmt.Fprint(out, text)
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Timer"))
			fmt.Fprint(out, formatter.FormatTimerSettings(app.Timer.Config()))
			if app.Journal == nil {
				return nil
			}
			counts := make(map[string]int, 2)
			for _, name := range []string{store.CollectionTasks, store.CollectionSessions} {
				n, err := app.Journal.WriteCount(cmd.Context(), name)
				if err != nil {
					return err
				}
				counts[name] = n
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Storage"))
			fmt.Fprint(out, formatter.FormatWriteCounts(counts))
			return nil
		},
	})
	return cmd
}
