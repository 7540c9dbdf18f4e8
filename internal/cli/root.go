package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantbuddy/plantbuddy/internal/app"
	"github.com/plantbuddy/plantbuddy/internal/config"
)

// App carries the persistent flags shared by every command.
type App struct {
	ConfigPath string
	PrefsPath  string
	APIURL     string
	Token      string
	Refresh    time.Duration

	refreshSet bool
}

// NewRootCmd builds the plantbuddy command tree. Without a subcommand it runs
// the interactive TUI.
func NewRootCmd(ctx context.Context) *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:           "plantbuddy",
		Short:         "Track which plants need water today",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  plantbuddy

  # Print what needs water
  plantbuddy today --filter due

  # Mark plants watered without the TUI
  plantbuddy water 3 7
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.refreshSet = cmd.Flags().Changed("refresh")
			env, err := a.setup()
			if err != nil {
				return err
			}
			defer env.Close()
			return app.Run(cmd.Context(), env, app.Options{PrefsPath: a.PrefsPath})
		},
	}
	cmd.SetContext(ctx)

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Path to config.toml (default ~/.config/plantbuddy/config.toml)")
	cmd.PersistentFlags().StringVar(&a.PrefsPath, "prefs", "", "Path to prefs.toml (default ~/.config/plantbuddy/prefs.toml)")
	cmd.PersistentFlags().StringVar(&a.APIURL, "api-url", "", "Backend base URL (overrides api_url)")
	cmd.PersistentFlags().StringVar(&a.Token, "token", "", "Session token (overrides token and "+config.TokenEnv+")")
	cmd.Flags().DurationVar(&a.Refresh, "refresh", 0, "Auto-refresh interval, 0 disables (overrides refresh_every)")

	cmd.AddCommand(newTodayCmd(a))
	cmd.AddCommand(newWaterCmd(a))
	cmd.AddCommand(newLogsCmd(a))

	return cmd
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd(ctx).ExecuteContext(ctx)
}

func (a *App) setup() (*app.Env, error) {
	return app.Setup(a.ConfigPath, a.override)
}

func (a *App) override(cfg *config.Config) {
	if v := strings.TrimSpace(a.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(a.Token); v != "" {
		cfg.Token = v
	}
	if a.refreshSet {
		cfg.RefreshEvery = a.Refresh
	}
}
