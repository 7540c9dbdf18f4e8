package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantbuddy/plantbuddy/internal/config"
	"github.com/plantbuddy/plantbuddy/internal/logging"
)

func newLogsCmd(a *App) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of plantbuddy's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tail, err := logging.Tail(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log lines in %s\n", cfg.LogFile)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), logging.Colorize(line))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 shows all)")
	return cmd
}
