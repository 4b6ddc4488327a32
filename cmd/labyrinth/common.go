package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/config"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/session"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// fail prints the error the way every command does and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "labyrinth",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger writes to ~/.labyrinth/labyrinth.log when verbose so the
// terminal UI is left alone. Without --verbose it discards.
func fileLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return log.New(io.Discard), func() {}
	}
	path, err := persist.ExpandHome("~/.labyrinth/labyrinth.log")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { _ = f.Close() }
}

// loadConfig reads the config and applies command-line overrides, which win
// over YAML and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Maze.Preset = config.SizePreset(flagPreset)
		config.ApplyPreset(&cfg, cfg.Maze.Preset)
	}
	if flags.Changed("width") {
		cfg.Maze.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Maze.Height = flagHeight
	}
	if flags.Changed("seed") {
		cfg.Maze.Seed = flagSeed
		cfg.Maze.UseRandomSeed = false
	}
	if flags.Changed("random-seed") {
		cfg.Maze.UseRandomSeed = flagRandom
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
	if flags.Changed("path") {
		cfg.Storage.Path = flagPath
	}
	if flags.Changed("key") {
		cfg.Storage.Key = flagKey
	}
	if flags.Changed("db") {
		cfg.Server.RunsDB = flagRunsDB
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// env bundles what most commands need.
type env struct {
	cfg    config.Config
	logger *log.Logger
	runs   *storage.Store // nil when the runs database cannot be opened
	medium persist.Medium
}

func (e *env) Close() {
	if e.medium != nil {
		_ = e.medium.Close()
	}
	if e.runs != nil {
		_ = e.runs.Close()
	}
}

// openEnv opens the runs database and the configured snapshot medium. The
// sqlite backend shares the runs database unless it is given its own path.
func openEnv(cfg config.Config, logger *log.Logger) (*env, error) {
	e := &env{cfg: cfg, logger: logger}

	runs, err := storage.Open(cfg.Server.RunsDB)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
	} else {
		e.runs = runs
	}

	backend := cfg.Storage.Backend
	if backend == "" {
		backend = "file"
	}
	if backend == "sqlite" && e.runs != nil && (cfg.Storage.Path == "" || cfg.Storage.Path == persist.DefaultFilePath) {
		e.medium = e.runs.Medium(cfg.Storage.Key)
	} else {
		opts := cfg.Storage.Options()
		if backend == "sqlite" && opts.Path == persist.DefaultFilePath {
			opts.Path = cfg.Server.RunsDB
		}
		e.medium, err = persist.Open(backend, opts)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	logger.Debug("storage ready", "medium", e.medium.Name())
	return e, nil
}

// sessionOptions wires logging and run recording.
func (e *env) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(e.logger)}
	if e.runs != nil {
		opts = append(opts, session.WithRuns(e.runs))
	}
	return opts
}

// newSession builds a headless session over the configured medium.
func (e *env) newSession(opts ...session.Option) (*session.Session, error) {
	gen, err := world.NewGenerator(e.cfg.Params(), world.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	return session.New(gen, e.medium, append(e.sessionOptions(), opts...)...), nil
}

// hasRecord reports whether the medium holds a saved game.
func (e *env) hasRecord(ctx context.Context) (bool, error) {
	_, err := e.medium.Read(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, persist.ErrNotFound):
		return false, nil
	}
	return false, err
}
