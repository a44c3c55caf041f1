// platformer is a tile-based platformer for the terminal.
//
// Usage:
//
//	platformer play [level]     - Play a level (default from config)
//	platformer menu             - Pick levels interactively
//	platformer levels           - List available levels
//	platformer inspect <level>  - Show a level's grid and spawn points
//	platformer scores [level]   - Show the best runs
//	platformer config           - Print the effective configuration
//	platformer serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--levels-dir <path>   - Extra directory of level files
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.platformer/runs.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagFPS        int
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Jump, stomp and dodge in your terminal",
	Long: `platformer is a tile-based platformer that runs in the terminal.

Walk and jump through levels built from Tiled maps or ASCII YAML files.
Landing on an enemy from above stomps it; any other touch ends the run.

Examples:
  platformer play
  platformer play 03-tower --difficulty hard
  platformer play ./my-level.tmx
  platformer menu
  platformer inspect 02-caverns
  platformer serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Extra directory of level files (overrides level.dir)")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to runs database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// app is what every command needs: the effective config, the level
// catalogue and a logger.
type app struct {
	cfg     config.PlatformerConfig
	levels  []levels.Level
	log     *log.Logger
	closers []io.Closer
}

// loadApp reads the config, applies the difficulty preset and loads the
// levels. Full-screen commands pass interactive so that logs stay off the
// terminal unless a log file is given.
func loadApp(interactive bool) (*app, error) {
	logger, closer, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}
	a := &app{log: logger}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		a.Close()
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, err
	}
	a.cfg = cfg

	dir := cfg.Level.Dir
	if flagLevelsDir != "" {
		dir = flagLevelsDir
	}
	a.levels, err = levels.LoadCatalogue(dir)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Debug("app ready", "levels", len(a.levels), "difficulty", difficultyName(), "levels_dir", dir)
	return a, nil
}

// Close releases the log file, if any.
func (a *app) Close() {
	for _, c := range a.closers {
		c.Close()
	}
}

// openStore opens the runs database. Games still run without it.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.log.Warn("could not open runs database", "err", err)
		return nil
	}
	return store
}

func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --log-level: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "platformer",
	})
	return logger, closer, nil
}

func difficultyName() string {
	if flagDifficulty == "" {
		return string(config.DifficultyNormal)
	}
	return flagDifficulty
}
