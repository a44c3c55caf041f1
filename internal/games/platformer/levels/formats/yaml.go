// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"gopkg.in/yaml.v3"
)

// DefaultLayer is the layer name a bare `map` block is stored under.
const DefaultLayer = "solid"

// PlayerMarker marks the player's start tile in an ASCII map.
const PlayerMarker = 'P'

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     *YAMLSize         `yaml:"size,omitempty"`
	Tile     YAMLSize          `yaml:"tile"`
	Player   *YAMLPoint        `yaml:"player,omitempty"`
	Legend   map[string]uint32 `yaml:"legend,omitempty"`
	SolidIDs []uint32          `yaml:"solid_ids,omitempty"`
	Map      string            `yaml:"map,omitempty"`
	Layers   map[string]string `yaml:"layers,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents a width/height pair.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a tile coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID     string
	Name   string
	Format string
	Source core.TileSource
	// Spawn is the player's feet position in pixels: horizontally centred,
	// on the bottom edge of the actor box.
	Spawn    core.Vec
	HasSpawn bool
	SolidIDs []uint32
	Metadata map[string]string
}

// ParseYAML parses a YAML level file with ASCII tile maps.
//
// Each map character is looked up in the legend; '.' and ' ' are empty and
// the player marker is an empty cell that sets the start tile. Without a
// legend, '#' places tile id 1. The map size is the declared size when
// given, otherwise the extent of the rows.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layers := make(map[string]string, len(yl.Layers)+1)
	for name, body := range yl.Layers {
		layers[name] = body
	}
	if yl.Map != "" {
		if _, dup := layers[DefaultLayer]; dup {
			return Level{}, fmt.Errorf("both map and layers.%s are set", DefaultLayer)
		}
		layers[DefaultLayer] = yl.Map
	}
	if len(layers) == 0 {
		return Level{}, fmt.Errorf("level %q has no map", yl.ID)
	}

	legend := yl.Legend
	if len(legend) == 0 {
		legend = map[string]uint32{"#": 1}
	}

	tw, th := yl.Tile.W, yl.Tile.H
	if tw == 0 && th == 0 {
		tw, th = 16, 16
	}

	src := &asciiSource{
		tileW:  tw,
		tileH:  th,
		layers: make(map[string][]core.TileRef, len(layers)),
	}

	var spawn *YAMLPoint
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		refs, w, h, marker, err := parseRows(layers[name], legend)
		if err != nil {
			return Level{}, fmt.Errorf("layer %q: %w", name, err)
		}
		src.layers[name] = refs
		src.w, src.h = max(src.w, w), max(src.h, h)
		if marker != nil && spawn == nil {
			spawn = marker
		}
	}
	if yl.Size != nil {
		src.w, src.h = yl.Size.W, yl.Size.H
	}
	if yl.Player != nil {
		spawn = yl.Player
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Format:   "yaml",
		Source:   src,
		SolidIDs: yl.SolidIDs,
		Metadata: yl.Metadata,
	}
	if spawn != nil {
		level.Spawn = core.Vec{
			X: float64(spawn.X*tw) + float64(tw)/2,
			Y: float64((spawn.Y + 1) * th),
		}
		level.HasSpawn = true
	}
	return level, nil
}

// parseRows turns an ASCII block into tile references.
func parseRows(body string, legend map[string]uint32) ([]core.TileRef, int, int, *YAMLPoint, error) {
	rows := strings.Split(strings.TrimRight(body, "\n"), "\n")
	var (
		refs   []core.TileRef
		marker *YAMLPoint
		width  int
	)
	for y, row := range rows {
		row = strings.TrimRight(row, "\r")
		x := 0
		for _, ch := range row {
			switch {
			case ch == '.' || ch == ' ':
			case ch == PlayerMarker:
				marker = &YAMLPoint{X: x, Y: y}
			default:
				id, ok := legend[string(ch)]
				if !ok {
					return nil, 0, 0, nil, fmt.Errorf("unknown tile %q at (%d,%d)", ch, x, y)
				}
				refs = append(refs, core.TileRef{X: x, Y: y, ID: id})
			}
			x++
		}
		width = max(width, x)
	}
	return refs, width, len(rows), marker, nil
}

// asciiSource is the TileSource of a YAML level.
type asciiSource struct {
	w, h         int
	tileW, tileH int
	layers       map[string][]core.TileRef
}

func (s *asciiSource) Size() (int, int)     { return s.w, s.h }
func (s *asciiSource) TileSize() (int, int) { return s.tileW, s.tileH }

func (s *asciiSource) Tiles(layer string) ([]core.TileRef, error) {
	refs, ok := s.layers[layer]
	if !ok {
		return nil, &core.LoadError{Layer: layer, Err: core.ErrMissingLayer}
	}
	return refs, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".tmx", ".yaml", ".yml"}
}
