package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

var flagWalls bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a maze for a seed",
	Long: `Generate a maze and print it top-down with north at the top.

Markers:
  P  player spawn      E  enemy spawn
  o  orb               W  exit (win zone)
  ... or :  the door (a wall that can be passed)

Examples:
  labyrinth generate --seed 42
  labyrinth generate --preset large
  labyrinth generate --seed 7 --width 20 --height 8 --walls`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&flagWalls, "walls", false, "Also list every wall with its world transform")
}

func runGenerate(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}
	logger := newLogger(cmd.ErrOrStderr())

	gen, err := world.NewGenerator(cfg.Params(), world.WithLogger(logger))
	if err != nil {
		fail(err)
	}
	res, err := gen.Generate()
	if err != nil {
		fail(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed %d  (%dx%d)\n\n", res.Seed, res.Grid.Width(), res.Grid.Height())
	fmt.Fprint(out, res.String())

	if !res.DoorPlaced {
		fmt.Fprintln(out, "\nNo door: the maze has no walls to break.")
	}

	if !flagWalls {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-5s  %-8s  %-5s  %-24s  %s\n", "#", "Cell", "Side", "Position", "Rot")
	for i, p := range res.Walls {
		mark := ""
		if res.DoorPlaced && i == res.Door.Index {
			mark = "  door"
		}
		fmt.Fprintf(out, "  %-5d  %-8s  %-5s  %-24s  %3.0f%s\n",
			i, p.Wall.Cell, p.Wall.Side, p.Wall.Position, p.Wall.RotationY, mark)
	}
}
