package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

var (
	flagLimit   int
	flagBySeed  bool
	flagClear   bool
	flagBrowser bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished runs",
	Long: `Display the best runs recorded when a player reached the exit.

Examples:
  labyrinth scores
  labyrinth scores --seed 42 --by-seed
  labyrinth scores --tui
  labyrinth scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "How many runs to list")
	scoresCmd.Flags().BoolVar(&flagBySeed, "by-seed", false, "Only runs of the --seed maze")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().BoolVar(&flagBrowser, "tui", false, "Browse runs in the terminal UI")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(err)
	}

	store, err := storage.Open(cfg.Server.RunsDB)
	if err != nil {
		fail(fmt.Errorf("opening runs database: %w", err))
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fail(err)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagBrowser {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagSeed, width, height); err != nil {
			fail(err)
		}
		return
	}

	var runs []storage.Run
	if flagBySeed {
		runs, err = store.RunsForSeed(flagSeed)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		fail(fmt.Errorf("retrieving runs: %w", err))
	}
	if len(runs) > flagLimit {
		runs = runs[:flagLimit]
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'labyrinth play' and find the exit to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %-7s  %-6s  %-8s  %s\n", "Rank", "Score", "Seed", "Size", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %-7s  %-6s  %-8s  %s\n", "----", "-----", "----", "----", "------", "----", "----")
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-6d  %-12d  %-7s  %-6s  %-8s  %s\n",
			i+1, r.Score, r.Seed, fmt.Sprintf("%dx%d", r.Width, r.Height), result,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f\n",
			stats.Runs, stats.Wins, stats.HighScore, stats.AvgScore)
	}
}
