package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Display the best runs on a level, or a summary of every level played.

Examples:
  platformer scores
  platformer scores 01-meadow --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(a, store)
	}

	lvl, err := a.catalog(store).find(args[0])
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(lvl.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n\n", lvl.Name)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' and stomp something!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %s\n", "Rank", "Score", "Ticks", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %s\n", "----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-7d  %-6s  %s\n",
			i+1, r.Score, r.Ticks, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(a *app, store *storage.Store) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-5s  %-6s  %s\n", "Level", "Runs", "Best", "Avg", "Last played")
	fmt.Printf("  %-16s  %-5s  %-5s  %-6s  %s\n", "-----", "----", "----", "---", "-----------")
	for _, lvl := range a.levels {
		st, ok := stats[lvl.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-5d  %-5d  %-6.1f  %s\n",
			lvl.ID, st.Runs, st.BestScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
