package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
)

var (
	flagNoMenu     bool
	flagTickRate   int
	flagEnemyEvery int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Open the start menu and play. The saved game is restored when you
continue; the game is saved when you quit or walk into the door.

Controls:
  Arrows/WASD  - Move
  Space        - Throw the orb
  X/Ctrl+S     - Save
  R            - New maze (deletes the save)
  N F T M      - Night, fog, torch, music
  ?            - Help
  Q/Esc        - Save and quit

Examples:
  labyrinth play
  labyrinth play --no-menu --seed 42
  labyrinth play --backend sqlite`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Skip the start menu and continue the saved game")
	playCmd.Flags().IntVar(&flagTickRate, "fps", 10, "Tick rate (frames per second)")
	playCmd.Flags().IntVar(&flagEnemyEvery, "enemy-every", 8, "Ticks between enemy steps (0 = enemy stands still)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}
	logger, closeLog := fileLogger()
	defer closeLog()

	e, err := openEnv(cfg, logger)
	if err != nil {
		fail(err)
	}
	defer e.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	params := cfg.Params()
	fresh := false
	for !flagNoMenu {
		hasSave, err := e.hasRecord(ctx)
		if err != nil {
			fail(err)
		}
		item, err := tui.RunMenu(hasSave, width, height)
		if err != nil {
			fail(err)
		}
		switch item.Choice {
		case tui.ChoiceQuit:
			return
		case tui.ChoiceScores:
			var source tui.RunSource
			if e.runs != nil {
				source = e.runs
			}
			if err := tui.RunScoreboard(source, cfg.Maze.Seed, width, height); err != nil {
				fail(err)
			}
			continue
		case tui.ChoiceNewMaze:
			side := item.Preset.Side()
			params.Width, params.Height = side, side
			fresh = true
		}
		break
	}

	sess, board, err := tui.Setup(ctx, params, e.medium, nil, e.sessionOptions()...)
	if err != nil {
		fail(err)
	}
	switch {
	case fresh:
		if err := sess.Reset(ctx); err != nil {
			fail(err)
		}
	case cmd.Flags().Changed("seed") && !flagRandom:
		sess.Generator().SetSeed(flagSeed)
		if _, err := sess.Regenerate(); err != nil {
			fail(err)
		}
	}

	rc := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagTickRate,
		EnemyEvery: flagEnemyEvery,
	}
	if err := tui.Run(ctx, sess, board, rc); err != nil {
		fail(err)
	}
}
