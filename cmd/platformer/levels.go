package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long:  `Shows the built-in levels and any found in --levels-dir.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(a.levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := len("ID")
	for _, lvl := range a.levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Format", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")
	for _, lvl := range a.levels {
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, lvl.ID, lvl.Format, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
	return nil
}
