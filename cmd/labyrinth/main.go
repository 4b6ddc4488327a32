// labyrinth generates seeded mazes and plays them in the terminal, with the
// game state saved to a pluggable storage backend.
//
// Usage:
//
//	labyrinth generate        - Print a maze for a seed
//	labyrinth play            - Play in the terminal
//	labyrinth serve           - Start SSH server for remote play
//	labyrinth api             - Start the HTTP API
//	labyrinth save            - Generate a maze and store it as the saved game
//	labyrinth load            - Restore the saved game and print it
//	labyrinth inspect         - Decode and print the stored snapshot
//	labyrinth reset           - Delete the saved game
//	labyrinth scores          - Show the best finished runs
//	labyrinth backends        - List storage backends
//
// Global flags:
//
//	--config <path>   - Config file (default search: ~/.labyrinth/config.yaml, ./configs/labyrinth.yaml)
//	--seed <value>    - Maze seed; any int64, 0 included, turns random seeding off
//	--random-seed     - Draw a fresh seed at generation time
//	--backend <name>  - Storage backend
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagWidth   int
	flagHeight  int
	flagSeed    int64
	flagRandom  bool
	flagPreset  string
	flagBackend string
	flagPath    string
	flagKey     string
	flagRunsDB  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Labyrinth - seeded mazes in your terminal",
	Long: `Labyrinth carves a perfect maze from a seed, places the player, an enemy,
an orb and the exit, and lets you play it in the terminal or over SSH.
The game state is saved to a file, SQLite, gdata, Redis or MongoDB.

Examples:
  labyrinth generate --seed 42
  labyrinth play --preset large
  labyrinth play --backend sqlite
  labyrinth serve --ssh :2222
  labyrinth api --http :8080
  labyrinth inspect --format yaml
  labyrinth scores`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagWidth, "width", 0, "Maze width in cells (5-100)")
	pf.IntVar(&flagHeight, "height", 0, "Maze height in cells (5-100)")
	pf.Int64Var(&flagSeed, "seed", 0, "Maze seed (default: configured or random)")
	pf.BoolVar(&flagRandom, "random-seed", false, "Draw a random seed, ignoring --seed")
	pf.StringVar(&flagPreset, "preset", "", "Size preset: small, normal, large, huge")
	pf.StringVar(&flagBackend, "backend", "", "Storage backend: file, sqlite, gdata, redis, mongo, memory")
	pf.StringVar(&flagPath, "path", "", "Storage path for the file and sqlite backends")
	pf.StringVar(&flagKey, "key", "", "Record key inside the backend")
	pf.StringVar(&flagRunsDB, "db", "", "Path to the runs database")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(backendsCmd)
}
