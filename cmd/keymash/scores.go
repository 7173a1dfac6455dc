package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/keymash/internal/platform/tui"
	"github.com/vovakirdan/keymash/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best and recent runs",
	Long: `Display the best won runs, ranked by fewest total taps.

Examples:
  keymash scores
  keymash scores --recent
  keymash scores --tui
  keymash scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open results database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	title := "Best Runs"
	runs, err := store.BestRuns(flagScoresLimit)
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'keymash play' and clear every round to set a best run!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-6s  %-6s  %-10s  %s\n", "Rank", "Taps", "Rounds", "Result", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-5s  %-6s  %-6s  %-10s  %s\n", "----", "----", "------", "------", "----------", "----")

	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		rounds := fmt.Sprintf("%d/%d", r.RoundsCleared, r.TotalRounds)
		fmt.Printf("  %-4d  %-5d  %-6s  %-6s  %-10s  %s\n",
			i+1, r.TotalTaps, rounds, result, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.Stats()
	if err == nil {
		fmt.Printf("Runs: %d  Wins: %d", stats.Runs, stats.Wins)
		if stats.BestTaps > 0 {
			fmt.Printf("  Best: %d taps", stats.BestTaps)
		}
		fmt.Println()
	}
	return nil
}
