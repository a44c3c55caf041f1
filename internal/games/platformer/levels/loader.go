// Package levels provides level loading for the platformer.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
)

//go:embed data
var embedded embed.FS

// EmbeddedDir is the directory of the built-in levels inside Embedded().
const EmbeddedDir = "data"

// Embedded returns the built-in levels.
func Embedded() fs.FS {
	return embedded
}

// ErrNotFound is returned when no level has the requested id.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Format   string
	Source   core.TileSource
	Spawn    core.Vec
	HasSpawn bool
	SolidIDs []uint32
	Metadata map[string]string
	FilePath string
}

// Grid builds the collision grid from layer. Level-specific solid ids take
// precedence over the fallback ids.
func (l *Level) Grid(layer string, fallback []uint32) (*core.Grid, error) {
	ids := fallback
	if len(l.SolidIDs) > 0 {
		ids = l.SolidIDs
	}
	g, err := core.Build(l.Source, layer, core.SolidIDs(ids...))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return g, nil
}

// Stage builds the grid and places the player and enemy spawns for p.
// Without an explicit start, the player takes the first standing spot on
// the grid, or the top-left corner when there is none.
func (l *Level) Stage(layer string, fallback []uint32, p core.Params) (*core.Stage, error) {
	g, err := l.Grid(layer, fallback)
	if err != nil {
		return nil, err
	}
	st := core.NewStage(g, core.Vec{}, p)
	if l.HasSpawn {
		st.PlayerSpawn = core.Vec{X: l.Spawn.X - p.PlayerW/2, Y: l.Spawn.Y - p.PlayerH}
	} else if spots := core.FindSpawns(g, p.PlayerW, p.PlayerH); len(spots) > 0 {
		st.PlayerSpawn = spots[0]
	}
	return st, nil
}

// Loader handles loading levels from a directory of a file system.
type Loader struct {
	fsys fs.FS
	dir  string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), dir: "."}
}

// NewFSLoader creates a loader over dir inside fsys.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{fsys: fsys, dir: dir}
}

// DefaultLoader returns a loader over the built-in levels.
func DefaultLoader() *Loader {
	return NewFSLoader(embedded, EmbeddedDir)
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. A file that fails
// to parse fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", l.dir, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file; p is relative to the loader's file system.
func (l *Loader) LoadFile(p string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))

	var (
		parsed formats.Level
		err    error
	)
	switch ext {
	case ".tmx":
		parsed, err = formats.ParseTMX(l.fsys, p)
	case ".yaml", ".yml":
		var data []byte
		data, err = fs.ReadFile(l.fsys, p)
		if err != nil {
			return Level{}, fmt.Errorf("reading file %s: %w", p, err)
		}
		parsed, err = formats.ParseYAML(data)
		if err == nil && parsed.ID == "" {
			parsed.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	name := parsed.Name
	if name == "" {
		name = parsed.ID
	}
	return Level{
		ID:       parsed.ID,
		Name:     name,
		Format:   parsed.Format,
		Source:   parsed.Source,
		Spawn:    parsed.Spawn,
		HasSpawn: parsed.HasSpawn,
		SolidIDs: parsed.SolidIDs,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Resolve finds a level by id in the loader, or treats ref as a path to a
// level file on disk when it has a supported extension.
func (l *Loader) Resolve(ref string) (Level, error) {
	if isSupportedExtension(strings.ToLower(filepath.Ext(ref))) {
		dir, file := filepath.Split(ref)
		if dir == "" {
			dir = "."
		}
		return NewLoader(dir).LoadFile(file)
	}
	return l.LoadByID(ref)
}

// LoadCatalogue returns the built-in levels merged with the levels found
// under dir. A level in dir replaces the built-in level with the same id.
// An empty dir yields only the built-ins.
func LoadCatalogue(dir string) ([]Level, error) {
	builtin, err := DefaultLoader().LoadAll()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return builtin, nil
	}

	extra, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Level, len(builtin)+len(extra))
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range extra {
		byID[lvl.ID] = lvl
	}

	merged := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		merged = append(merged, lvl)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})
	return merged, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
