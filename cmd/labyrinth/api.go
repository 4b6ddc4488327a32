package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/platform/httpapi"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Serve maze generation and the saved game over HTTP.

Routes:
  GET  /v1/maze?width=&height=&seed=&random=&format=ascii
  GET  /v1/session                 current state
  GET  /v1/session/snapshot        the record a save would write
  GET  /v1/session/maze            ASCII map of the current maze
  POST /v1/session/save|load|reset
  POST /v1/session/move            {"direction": "north"}
  POST /v1/session/score           {"points": 1}
  POST /v1/session/toggle/:flag    night, fog, flashlight, music
  PUT  /v1/session/environment     {"isNight": true, ...}

Examples:
  labyrinth api
  labyrinth api --http :9090 --backend redis`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (host:port)")
}

func runAPI(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}
	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	logger := newLogger(os.Stderr)

	e, err := openEnv(cfg, logger)
	if err != nil {
		fail(err)
	}
	defer e.Close()

	sess, err := e.newSession()
	if err != nil {
		fail(err)
	}
	if _, err := sess.Load(context.Background()); err != nil {
		fail(err)
	}

	router := httpapi.NewRouter(httpapi.Config{
		Addr: cfg.Server.HTTPAddr,
		Controllers: []httpapi.Controller{
			httpapi.NewMazeController(cfg.Params()),
			httpapi.NewSessionController(sess),
		},
		Logger: logger,
	})
	if err := router.Run(); err != nil {
		fail(err)
	}
}
