package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show stored sessions for a mode",
	Long: `Display the best (or most recent) stored sessions for a mode,
followed by aggregate statistics.

Examples:
  beerpong scores
  beerpong scores beerpong_quick --recent
  beerpong scores --limit 25
  beerpong scores beerpong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by date instead of score")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored sessions of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := modeArg(args)
	if err != nil {
		return err
	}
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open sessions database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared sessions for %s.\n", title)
		return nil
	}

	var sessions []storage.SessionRecord
	heading := "Best Sessions"
	if flagRecent {
		heading = "Recent Sessions"
		sessions, err = store.RecentSessions(gameID, flagLimit)
	} else {
		sessions, err = store.TopSessions(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'beerpong play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-6s  %-8s  %-6s  %-8s  %s\n",
		"Rank", "Score", "Hits", "Misses", "Accuracy", "Result", "Table", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-6s  %-8s  %-6s  %-8s  %s\n",
		"----", "-----", "----", "------", "--------", "------", "-----", "----")
	for i, s := range sessions {
		result := "lost"
		if s.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-6d  %-4d  %-6d  %7.0f%%  %-6s  %-8s  %s\n",
			i+1, s.Score, s.Hits, s.Misses, s.Accuracy()*100, result, s.TableLabel,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Sessions: %d  Won: %d (%.0f%%)  Best: %d  Average: %.0f\n",
		stats.Sessions, stats.Wins, stats.WinRate()*100, stats.BestScore, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
