package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bottlepop/internal/platform/tui"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

var (
	flagLimit       int
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for the specified mode, with the
intensity each game ended at.

Examples:
  bottlepop scores bottles
  bottlepop scores bottles_rush --limit 20
  bottlepop scores bottles --limit 0        # every recorded game
  bottlepop scores bottles --interactive
  bottlepop scores bottles --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkMode(gameID); err != nil {
		return err
	}
	info, _ := registry.Info(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all scores for %s.\n", info.Title)
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height, gameID)
		return err
	}

	scores, err := listScores(store, gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bottlepop play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "Rank", "Score", "Intensity", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "----", "-----", "---------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-9d  %s\n", i+1, entry.Score, entry.Intensity, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.1f  |  Highest intensity: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.MaxIntensity)
	}
	return nil
}

// listScores returns the best limit scores, or every score when limit
// is zero or negative.
func listScores(store *storage.Store, gameID string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return store.AllScores(gameID)
	}
	return store.TopScores(gameID, limit)
}
