package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagScoresRuns  int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and the most recent runs for a mode.
Without a mode, shows a summary of every mode that has been played.

Examples:
  blocks scores
  blocks scores classic
  blocks scores classic --all
  blocks scores rescue --runs 20
  blocks scores rescue --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresRuns, "runs", 5, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every score instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a mode")
		}
		return withStore(printAllModes)
	}

	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (run 'blocks list' to see available modes)", modeID)
	}
	mode, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		if flagScoresClear {
			if err := store.ClearScores(modeID); err != nil {
				return err
			}
			fmt.Printf("Cleared scores for %s\n", mode.Title())
			return nil
		}

		var scores []storage.ScoreEntry
		if flagScoresAll {
			scores, err = store.AllScores(modeID)
		} else {
			scores, err = store.TopScores(modeID, 10)
		}
		if err != nil {
			return err
		}

		fmt.Printf("High Scores - %s\n", mode.Title())
		if best, err := store.HighScore(modeID); err == nil && best > 0 {
			fmt.Printf("Best: %d\n", best)
		}
		fmt.Println()

		if len(scores) == 0 {
			fmt.Println("No scores recorded yet.")
			fmt.Println()
			fmt.Printf("Run 'blocks simulate %s' to set the first high score!\n", modeID)
			return nil
		}

		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		if flagScoresRuns > 0 {
			runs, err := store.RecentRuns(modeID, flagScoresRuns)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println("Recent runs:")
			fmt.Printf("  %-8s  %-9s  %7s  %5s  %5s  %7s  %-10s  %s\n", "Session", "Strategy", "Score", "Moves", "Lines", "Revives", "End", "Seed")
			for _, r := range runs {
				fmt.Printf("  %-8s  %-9s  %7d  %5d  %5d  %7d  %-10s  %d\n",
					shortID(r.SessionID), r.Strategy, r.Score, r.Moves, r.Lines, r.Revives, r.EndReason, r.Seed)
			}
		}

		stats, err := store.GetModeStats(modeID)
		if err == nil {
			fmt.Println()
			fmt.Printf("Games: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
		}
		return nil
	})
}

func printAllModes(store *storage.Store) error {
	all, err := store.GetAllModesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %5s  %7s  %8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %5s  %7s  %8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, m := range registry.List() {
		s, ok := all[m.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s  %5d  %7d  %8.1f  %s\n",
			m.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
