package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level and Tab for the
scoreboard. Leaving a level with Esc returns to the menu.

Examples:
  platformer menu
  platformer menu --levels-dir ./levels
  platformer menu --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}
	cat := a.catalog(store)
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(cat.Levels(), store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(cat.Levels(), store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := cat.NewGame(result.LevelID)
		if err != nil {
			a.log.Error("cannot start level", "level", result.LevelID, "err", err)
			continue
		}
		a.log.Info("playing", "level", result.LevelID, "difficulty", difficultyName())

		backToMenu, err := tui.Run(game, store, cfg, a.settings())
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
