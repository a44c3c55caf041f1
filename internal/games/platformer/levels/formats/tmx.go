package formats

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

// PlayerSpawnGroup is the object group holding the player's start.
const PlayerSpawnGroup = "PlayerSpawn"

// ParseTMX loads a Tiled map from fsys. The level id defaults to the file
// name without extension; the map properties "id", "name" and "solid_ids"
// (comma separated global tile ids) override it.
//
// The first object of the PlayerSpawn group sets the start: a point object
// marks the feet, a rectangle marks the box whose bottom centre is used.
func ParseTMX(fsys fs.FS, tmxPath string) (Level, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	stem := strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath))
	level := Level{
		ID:       stem,
		Name:     stem,
		Format:   "tmx",
		Source:   &tmxSource{m: m},
		Metadata: make(map[string]string),
	}

	if m.Properties != nil {
		for _, p := range *m.Properties {
			level.Metadata[p.Name] = p.Value
		}
	}
	if id := level.Metadata["id"]; id != "" {
		level.ID = id
	}
	if name := level.Metadata["name"]; name != "" {
		level.Name = name
	}
	if ids := level.Metadata["solid_ids"]; ids != "" {
		level.SolidIDs, err = parseIDList(ids)
		if err != nil {
			return Level{}, fmt.Errorf("map property solid_ids: %w", err)
		}
	}

	for _, og := range m.ObjectGroups {
		if og.Name != PlayerSpawnGroup || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		level.Spawn = core.Vec{X: o.X + o.Width/2, Y: o.Y + o.Height}
		level.HasSpawn = true
		break
	}

	return level, nil
}

func parseIDList(s string) ([]uint32, error) {
	var ids []uint32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad tile id %q: %w", part, err)
		}
		ids = append(ids, uint32(id))
	}
	return ids, nil
}

// tmxSource exposes the tile layers of a Tiled map. Tile ids are global ids
// (tileset first gid plus local id).
type tmxSource struct {
	m *tiled.Map
}

func (s *tmxSource) Size() (int, int)     { return s.m.Width, s.m.Height }
func (s *tmxSource) TileSize() (int, int) { return s.m.TileWidth, s.m.TileHeight }

func (s *tmxSource) Tiles(name string) ([]core.TileRef, error) {
	for _, layer := range s.m.Layers {
		if layer.Name != name {
			continue
		}
		w, h := s.m.Width, s.m.Height
		if len(layer.Tiles) != w*h {
			return nil, &core.LoadError{
				Layer:  name,
				Err:    core.ErrDimensionMismatch,
				Detail: fmt.Sprintf("%d tiles for a %dx%d map", len(layer.Tiles), w, h),
			}
		}
		var refs []core.TileRef
		for i, tile := range layer.Tiles {
			if tile == nil || tile.IsNil() {
				continue
			}
			id := tile.ID
			if tile.Tileset != nil {
				id += tile.Tileset.FirstGID
			}
			refs = append(refs, core.TileRef{X: i % w, Y: i / w, ID: id})
		}
		return refs, nil
	}
	return nil, &core.LoadError{Layer: name, Err: core.ErrMissingLayer}
}
