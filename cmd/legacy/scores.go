package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/delta-legacy/internal/platform/tui"
	"github.com/vovakirdan/delta-legacy/internal/progress"
	"github.com/vovakirdan/delta-legacy/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [catalog]",
	Short: "Show the leaderboard",
	Long: `Display the best finished runs for a catalog.
Without an argument the catalog from settings is used.

Examples:
  legacy scores
  legacy scores delta --limit 20
  legacy scores -i
  legacy scores delta --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard interactively")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run for the catalog")
}

func runScores(cmd *cobra.Command, args []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}
	if len(args) == 1 {
		settings.Catalog.ID = args[0]
		settings.Catalog.Path = ""
	}

	cat, err := resolveCatalog(settings)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagClear {
		if err := store.ClearRuns(cat.ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared all runs for %s.\n", cat.Title)
		return
	}

	runs, err := store.TopRuns(cat.ID, flagLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", cat.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'legacy play' and finish every stage to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %-20s  %s\n", "#", "Player", "Score", "Time", "Rank", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %-20s  %s\n", "-", "------", "-----", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-5d  %-6s  %-20s  %s\n",
			i+1, r.Player, r.Score, progress.FormatElapsed(r.Duration), r.Rank,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.CatalogStats(cat.ID); err == nil && stats.Runs > 0 {
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Fastest: %s\n",
			stats.Runs, stats.BestScore, stats.AvgScore, progress.FormatElapsed(stats.Fastest))
	}
}
