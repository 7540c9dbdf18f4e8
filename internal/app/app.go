package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plantbuddy/plantbuddy/internal/config"
	"github.com/plantbuddy/plantbuddy/internal/logging"
	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/prefs"
	"github.com/plantbuddy/plantbuddy/internal/state"
	"github.com/plantbuddy/plantbuddy/internal/ui"
)

// Env is what every entry point needs: configuration, a logger and a client.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	Client *plants.Client

	closeLog func() error
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// Setup loads the config at path, opens the log file and builds the client.
// The caller applies flag overrides through override before the client is
// built.
func Setup(path string, override func(*config.Config)) (*Env, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if override != nil {
		override(&cfg)
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	client, err := plants.NewClient(cfg.APIURL,
		plants.WithToken(cfg.AuthHeader, cfg.Token),
		plants.WithTimeout(cfg.RequestTimeout),
		plants.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init plants client: %w", err)
	}

	return &Env{Config: cfg, Logger: logger, Client: client, closeLog: closer.Close}, nil
}

// Options configure the interactive application.
type Options struct {
	PrefsPath string // empty uses ~/.config/plantbuddy/prefs.toml
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, env *Env, opts Options) error {
	userPrefs := prefs.Load(opts.PrefsPath)

	store := state.NewStore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := ui.NewProgram(ui.Options{
		Context:   ctx,
		Backend:   env.Client,
		Store:     store,
		Logger:    env.Logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Endpoint:  env.Config.APIURL,
	})

	StartPoller(ctx, env.Config.RefreshEvery, func(ctx context.Context) error {
		err := store.Reload(ctx, env.Client)
		program.Send(ui.SyncedMsg{})
		return err
	}, env.Logger)

	env.Logger.Info("starting ui", "api_url", env.Config.APIURL, "refresh_every", env.Config.RefreshEvery)
	_, err := program.Run()
	return err
}
