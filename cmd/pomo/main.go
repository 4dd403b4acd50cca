package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/pomo/internal/cli"
	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/db"
	"github.com/alexanderramin/pomo/internal/notify"
	"github.com/alexanderramin/pomo/internal/observe"
	"github.com/alexanderramin/pomo/internal/stats"
	"github.com/alexanderramin/pomo/internal/store"
	"github.com/alexanderramin/pomo/internal/tasks"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	obs := observe.NewLogObserver(logger)

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()
	s := store.New(backend, logger)

	// Wire the task registry and the session log
	registry := tasks.Open(ctx, s, tasks.WithObserver(obs))
	sessions := stats.OpenLog(ctx, s, obs)
	engine := stats.NewEngine(sessions, time.Now)

	notifier, err := notify.New(cfg.Notify.Backend, notify.Options{Out: os.Stdout, Sound: cfg.Notify.Sound})
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	terminal := cli.NewTerminal(os.Stdin, os.Stdout, interactive, engine)

	machine, err := timer.New(sessions,
		timer.WithTaskCounter(registry),
		timer.WithNotifier(notifier),
		timer.WithDisplay(terminal),
		timer.WithPrompter(terminal),
		timer.WithInterrupts(cli.SignalInterrupts),
		timer.WithObserver(obs),
	)
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:        cfg,
		Tasks:         registry,
		Log:           sessions,
		Stats:         engine,
		Timer:         machine,
		Terminal:      terminal,
		IsInteractive: terminal.Interactive,
		Now:           time.Now,
	}
	if j, ok := backend.(store.Journal); ok {
		app.Journal = j
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// openLogger writes structured logs to the configured file. An empty path
// discards them.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := observe.ParseLevel(cfg.Logging.Level)
	path := cfg.LogPath()
	if path == "" {
		return observe.NewLogger(io.Discard, level), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return observe.NewLogger(f, level), func() { f.Close() }, nil
}

func openBackend(cfg *config.Config) (store.Backend, func(), error) {
	if cfg.Storage.Backend == config.BackendSQLite {
		database, err := db.OpenDB(cfg.DatabasePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return store.NewSQLiteBackend(database), func() { database.Close() }, nil
	}

	backend := store.NewFileBackend(cfg.Storage.DataDir, map[string]string{
		store.CollectionTasks:    cfg.TasksPath(),
		store.CollectionSessions: cfg.SessionsPath(),
	})
	return backend, func() {}, nil
}
