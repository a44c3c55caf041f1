package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// catalog serves the loaded levels to the menu and the SSH server.
type catalog struct {
	levels []levels.Level
	cfg    config.PlatformerConfig
	store  *storage.Store
	log    *log.Logger
}

func (a *app) catalog(store *storage.Store) *catalog {
	return &catalog{levels: a.levels, cfg: a.cfg, store: store, log: a.log}
}

func (c *catalog) Levels() []tui.LevelInfo {
	infos := make([]tui.LevelInfo, len(c.levels))
	for i, lvl := range c.levels {
		infos[i] = tui.LevelInfo{ID: lvl.ID, Title: lvl.Name}
	}
	return infos
}

func (c *catalog) NewGame(levelID string) (tui.Game, error) {
	lvl, err := c.find(levelID)
	if err != nil {
		return nil, err
	}
	return c.game(lvl), nil
}

func (c *catalog) game(lvl levels.Level) *platformer.Game {
	best := 0
	if c.store != nil {
		if b, err := c.store.BestScore(lvl.ID); err == nil {
			best = b
		}
	}
	return platformer.New(lvl, c.cfg,
		platformer.WithLogger(c.log),
		platformer.WithBest(best),
	)
}

// find looks a level up by id, or loads it from disk when ref is a path to
// a level file.
func (c *catalog) find(ref string) (levels.Level, error) {
	if ext := strings.ToLower(filepath.Ext(ref)); ext == ".tmx" || ext == ".yaml" || ext == ".yml" {
		return levels.DefaultLoader().Resolve(ref)
	}
	for _, lvl := range c.levels {
		if lvl.ID == ref {
			return lvl, nil
		}
	}
	return levels.Level{}, fmt.Errorf("%w: %s", levels.ErrNotFound, ref)
}
