package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/highscore"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Without a level, shows a summary of every level that has been played.
With a level, shows its top 10 table.

Examples:
  runner scores
  runner scores run1
  runner scores run1 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the level")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	levelID := args[0]
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'runner levels' to see available levels.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(levelID); err != nil {
			logger.Error("cannot clear scores", "level", levelID, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", levelID)
		return
	}

	printTable(store, levelID)
}

func printTable(store *storage.Store, levelID string) {
	game, err := registry.Create(levelID)
	if err != nil {
		logger.Error("cannot create level", "level", levelID, "error", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(levelID, highscore.TableSize)
	if err != nil {
		logger.Error("cannot retrieve scores", "level", levelID, "error", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-10d  %s\n", i+1, entry.PlayerName, entry.Score, dateStr)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllLevelStats()
	if err != nil {
		logger.Error("cannot retrieve stats", "error", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-6s  %-5s  %-8s  %-8s  %-7s  %s\n", "Level", "Runs", "Best", "Average", "Players", "Last played")
	fmt.Printf("  %-6s  %-5s  %-8s  %-8s  %-7s  %s\n", "-----", "----", "----", "-------", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-6s  %-5d  %-8d  %-8.0f  %-7d  %s\n",
			s.Level, s.RunsCount, s.HighScore, s.AvgScore, s.Players, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
