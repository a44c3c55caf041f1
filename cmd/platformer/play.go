package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level by id or by path to a .tmx/.yaml file.
Without an argument the configured default level is played.

Controls:
  A/D, Left/Right  - Move
  Space/W/Up       - Jump
  Enter            - Start a run
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Leave (when paused or after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  platformer play
  platformer play 02-caverns
  platformer play ./levels/custom.tmx --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ref := a.cfg.Level.Default
	if len(args) == 1 {
		ref = args[0]
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	cat := a.catalog(store)
	lvl, err := cat.find(ref)
	if errors.Is(err, levels.ErrNotFound) {
		return fmt.Errorf("unknown level %q, run 'platformer levels' to list them", ref)
	}
	if err != nil {
		return err
	}

	game := cat.game(lvl)
	a.log.Info("playing", "level", lvl.ID, "difficulty", difficultyName())
	_, err = tui.Run(game, store, runtimeConfig(), a.settings())
	return err
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

func (a *app) settings() tui.Settings {
	s := tui.Settings{
		HoldTicks:  a.cfg.Controls.HoldTicks,
		Difficulty: difficultyName(),
		Logger:     a.log,
	}
	if dir := config.UserDir(); dir != "" {
		s.ScreenshotDir = filepath.Join(dir, "screenshots")
	}
	return s
}
