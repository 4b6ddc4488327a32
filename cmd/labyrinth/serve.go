package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labyrinth SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session. Saved games are kept per user
in the runs database (all users share the best-runs table).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.labyrinth/ssh_host_ed25519

Examples:
  labyrinth serve                           # Listen on :2222
  labyrinth serve --ssh :23234              # Listen on port 23234
  labyrinth serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}
	if flagSSHAddr != "" {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	logger := newLogger(os.Stderr)

	runs, err := storage.Open(cfg.Server.RunsDB)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		runs = nil
	}

	sc := tui.DefaultSSHServerConfig()
	sc.Address = cfg.Server.SSHAddr
	sc.HostKeyPath = cfg.Server.HostKey
	sc.IdleTimeout = cfg.Server.IdleTimeout
	sc.Params = cfg.Params()
	sc.Runtime = core.DefaultConfig()
	sc.Runs = runs
	sc.Logger = logger

	// Non-sqlite backends get one record per user under their own key.
	if b := cfg.Storage.Backend; b != "" && b != "sqlite" && b != "file" {
		opts := cfg.Storage.Options()
		sc.NewMedium = func(user string) (persist.Medium, error) {
			o := opts
			o.Key = user
			return persist.Open(b, o)
		}
	}

	server, err := tui.NewSSHServer(sc)
	if err != nil {
		if runs != nil {
			runs.Close()
		}
		fail(fmt.Errorf("creating server: %w", err))
	}
	defer func() {
		if runs != nil {
			runs.Close()
		}
	}()

	fmt.Printf("Starting labyrinth SSH server on %s\n", sc.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail(fmt.Errorf("server: %w", err))
	}
}
