package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/session"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

var (
	flagScore  int
	flagNight  bool
	flagFormat string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Generate a maze and store it as the saved game",
	Long: `Generate a maze for the configured seed and write it to the storage
backend, replacing any saved game. Useful to hand someone a specific maze.

Examples:
  labyrinth save --seed 42
  labyrinth save --seed 42 --score 7 --night --backend sqlite`,
	Args: cobra.NoArgs,
	Run:  runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Restore the saved game and print it",
	Long: `Restore the saved game from the storage backend and print the maze
with the restored positions. Without a saved game a fresh maze is shown.`,
	Args: cobra.NoArgs,
	Run:  runLoad,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Decode and print the stored snapshot",
	Long: `Print the saved record as JSON or YAML without touching the game.

Examples:
  labyrinth inspect
  labyrinth inspect --format yaml --backend redis`,
	Args: cobra.NoArgs,
	Run:  runInspect,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved game",
	Args:  cobra.NoArgs,
	Run:   runReset,
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List storage backends",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range persist.Backends() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	saveCmd.Flags().IntVar(&flagScore, "score", 0, "Score to store")
	saveCmd.Flags().BoolVar(&flagNight, "night", false, "Store with night on")
	inspectCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format: json or yaml")
}

func openCLI(cmd *cobra.Command) (*env, context.Context) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}
	e, err := openEnv(cfg, newLogger(os.Stderr))
	if err != nil {
		fail(err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return e, ctx
}

func runSave(cmd *cobra.Command, _ []string) {
	e, ctx := openCLI(cmd)
	defer e.Close()

	sess, err := e.newSession()
	if err != nil {
		fail(err)
	}
	if _, err := sess.Regenerate(); err != nil {
		fail(err)
	}
	sess.AddScore(flagScore)
	if flagNight {
		sess.Toggle(session.Night)
	}
	if err := sess.Save(ctx); err != nil {
		fail(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved seed %d to %s\n", sess.Seed(), e.medium.Name())
}

func runLoad(cmd *cobra.Command, _ []string) {
	e, ctx := openCLI(cmd)
	defer e.Close()

	sess, err := e.newSession()
	if err != nil {
		fail(err)
	}
	restored, err := sess.Load(ctx)
	if err != nil {
		fail(fmt.Errorf("%w (run 'labyrinth reset' to start over)", err))
	}

	out := cmd.OutOrStdout()
	if restored {
		fmt.Fprintf(out, "Restored from %s\n", e.medium.Name())
	} else {
		fmt.Fprintln(out, "No saved game; generated a fresh maze")
	}
	flags := sess.Environment()
	fmt.Fprintf(out, "Seed %d  score %d  night %v  fog %v  torch %v  music %v\n\n",
		sess.Seed(), sess.Score(), flags.IsNight, flags.IsFoggy, flags.IsFlashlightOn, flags.IsMusicPlaying)

	res := sess.World()
	marks := map[core.Point]rune{res.Placement.WinZoneCell: 'W'}
	if at, ok := sess.Collectible(); ok {
		marks[world.CellOf(at)] = 'o'
	} else {
		fmt.Fprintln(out, "The player holds the orb.")
	}
	marks[world.CellOf(sess.Position(world.Enemy))] = 'E'
	marks[world.CellOf(sess.Position(world.Player))] = 'P'

	opts := maze.RenderOptions{Marks: marks}
	if res.DoorPlaced {
		opts.Door = &res.Door.Wall
	}
	fmt.Fprint(out, res.Grid.Render(opts))
}

func runInspect(cmd *cobra.Command, _ []string) {
	e, ctx := openCLI(cmd)
	defer e.Close()

	data, err := e.medium.Read(ctx)
	if err != nil {
		fail(err)
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		fail(err)
	}
	codec, err := snapshot.ByName(flagFormat)
	if err != nil {
		fail(err)
	}
	out, err := codec.Marshal(snap)
	if err != nil {
		fail(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

func runReset(cmd *cobra.Command, _ []string) {
	e, ctx := openCLI(cmd)
	defer e.Close()

	if err := e.medium.Delete(ctx); err != nil {
		fail(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted saved game from %s\n", e.medium.Name())
}
