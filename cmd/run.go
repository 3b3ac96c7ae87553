package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/app"
	"github.com/abhisek/az104/internal/llm"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// env is the set of collaborators every command builds on.
type env struct {
	dbPath string
	kv     store.KVRepo
	events store.EventRepo
	logger *slog.Logger

	closers []func() error
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

func (e *env) accounts(cmd *cobra.Command) *account.Repo {
	ns, _ := cmd.Flags().GetString("namespace")
	if ns == "" {
		ns = account.DefaultNamespace
	}
	return account.NewRepo(e.kv, ns)
}

// openEnv resolves the database and opens it. When the database cannot be
// opened the command continues on an in-memory store and says so on stderr.
func openEnv(cmd *cobra.Command, logger *slog.Logger) (*env, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	e := &env{dbPath: dbPath, logger: logger}

	s, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("database unavailable, using in-memory store", "db", dbPath, "err", err)
		fmt.Fprintln(os.Stderr, "Database unavailable:", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved.")
		e.kv = store.NewMemoryKV()
		e.events = store.NopEventRepo{}
		return e, nil
	}
	e.kv = s.KV()
	e.events = s.EventRepo()
	e.closers = append(e.closers, s.Close)
	return e, nil
}

// openStore opens the database for commands that only make sense against
// persisted data.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// logLevel reads AZ104_LOG_LEVEL.
func logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(os.Getenv("AZ104_LOG_LEVEL")))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func textLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel()}))
}

// fileLogger opens the TUI log file. The terminal belongs to Bubble Tea, so
// logs never go to stderr while it runs.
func fileLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		dbPath, err := resolveDBPath(cmd)
		if err != nil || store.IsPostgresDSN(dbPath) || strings.HasPrefix(dbPath, "file:") {
			path = filepath.Join(os.TempDir(), "az104.log")
		} else {
			path = filepath.Join(filepath.Dir(dbPath), "az104.log")
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return textLogger(f), f.Close, nil
}

// location reads AZ104_TIMEZONE, the reference zone of the daily gate.
func location() (*time.Location, error) {
	name := strings.TrimSpace(os.Getenv("AZ104_TIMEZONE"))
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("AZ104_TIMEZONE: %w", err)
	}
	return loc, nil
}

// newGenerator builds the LLM-backed generator. Without a configured
// provider the app still runs; starting a quiz reports the failure.
func newGenerator(ctx context.Context, events store.EventRepo, logger *slog.Logger) questiongen.Generator {
	provider, cfg, err := llm.NewProviderFromEnv(ctx, events, logger)
	if err != nil {
		logger.Warn("LLM provider not configured", "err", err)
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable.")
		return nil
	}
	logger.Info("LLM provider ready", "provider", cfg.Provider, "model", cfg.Model())

	qcfg := questiongen.DefaultConfig()
	if cfg.Timeout > 0 {
		qcfg.Timeout = cfg.Timeout
	}
	return questiongen.New(provider, qcfg, logger)
}

func newController(cmd *cobra.Command, e *env, gen questiongen.Generator) (*session.Controller, error) {
	loc, err := location()
	if err != nil {
		return nil, err
	}
	return session.New(session.Options{
		Generator: gen,
		Accounts:  e.accounts(cmd),
		Logger:    e.logger,
		Location:  loc,
	}), nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := fileLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := openEnv(cmd, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := newController(cmd, e, newGenerator(ctx, e.events, logger))
	if err != nil {
		return err
	}
	ctrl.Resume(ctx)

	return app.Run(ctx, app.Options{Controller: ctrl, Logger: logger})
}
