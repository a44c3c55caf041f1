package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the search order and the difficulty
preset have been applied. The output is a valid config file:

  platformer config --difficulty hard > ~/.platformer/configs/platformer.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := config.Marshal(a.cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
