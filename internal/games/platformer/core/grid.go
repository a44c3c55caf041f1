// Package core implements the platformer engine: a static tile grid, swept
// actor movement against it, the player and enemy controllers, encounter
// resolution and the run state machine.
//
// The package has no dependency on the terminal platform; the game wrapper
// drives it one frame at a time and renders the Frame it exposes.
package core

import (
	"errors"
	"fmt"
	"math"
)

// Tile is the collision class of one grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileSolid
)

func (t Tile) String() string {
	if t == TileSolid {
		return "solid"
	}
	return "empty"
}

// TileRef is one placed tile read from a map layer.
// Coordinates are in tiles; ID is the raw identifier from the map file.
type TileRef struct {
	X, Y int
	ID   uint32
}

// TileSource is the parsed tile map the grid is built from.
// Only cells that carry a tile are listed by Tiles.
type TileSource interface {
	// Size returns the declared map size in tiles.
	Size() (w, h int)
	// TileSize returns the pixel size of one tile.
	TileSize() (w, h int)
	// Tiles lists the placed tiles of the named layer.
	Tiles(layer string) ([]TileRef, error)
}

// SolidFunc decides whether a raw tile id blocks movement.
type SolidFunc func(id uint32) bool

// SolidIDs returns a SolidFunc that accepts exactly the given ids.
// With no ids, every placed tile is solid.
func SolidIDs(ids ...uint32) SolidFunc {
	if len(ids) == 0 {
		return func(uint32) bool { return true }
	}
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id uint32) bool {
		_, ok := set[id]
		return ok
	}
}

var (
	// ErrMissingLayer is returned when the requested layer is not in the map.
	ErrMissingLayer = errors.New("layer not found")
	// ErrDimensionMismatch is returned when tile coordinates disagree with the
	// declared map size.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// LoadError reports a tile map that cannot be turned into a grid.
type LoadError struct {
	Layer  string
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("grid: layer %q: %v", e.Layer, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Grid is the immutable collision grid of a level.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W, H         int
	TileW, TileH float64
	tiles        []Tile
}

// Build converts one layer of src into a Grid.
// A cell is solid when a tile is placed there and solid reports true for its
// id; cells with no tile are empty. Any coordinate outside the declared size
// is an error, and no partial grid is returned.
func Build(src TileSource, layer string, solid SolidFunc) (*Grid, error) {
	w, h := src.Size()
	tw, th := src.TileSize()
	if w <= 0 || h <= 0 || tw <= 0 || th <= 0 {
		return nil, &LoadError{
			Layer:  layer,
			Err:    ErrDimensionMismatch,
			Detail: fmt.Sprintf("map %dx%d with %dx%d tiles", w, h, tw, th),
		}
	}

	refs, err := src.Tiles(layer)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Layer: layer, Err: err}
	}

	if solid == nil {
		solid = SolidIDs()
	}

	g := &Grid{
		W:     w,
		H:     h,
		TileW: float64(tw),
		TileH: float64(th),
		tiles: make([]Tile, w*h),
	}
	for _, ref := range refs {
		if ref.X < 0 || ref.X >= w || ref.Y < 0 || ref.Y >= h {
			return nil, &LoadError{
				Layer:  layer,
				Err:    ErrDimensionMismatch,
				Detail: fmt.Sprintf("tile at (%d,%d) outside %dx%d", ref.X, ref.Y, w, h),
			}
		}
		if solid(ref.ID) {
			g.tiles[ref.Y*w+ref.X] = TileSolid
		}
	}
	return g, nil
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the tile at (x, y). Cells outside the grid are empty.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.tiles[y*g.W+x]
}

// Solid reports whether the cell at (x, y) is solid.
func (g *Grid) Solid(x, y int) bool {
	return g.At(x, y) == TileSolid
}

// PixelSize returns the world size in pixels.
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.W) * g.TileW, float64(g.H) * g.TileH
}

// Collides reports whether r overlaps any solid cell.
// Every cell the rectangle covers is tested, so a box wider or taller than a
// tile cannot straddle a solid cell unnoticed.
func (g *Grid) Collides(r Rect) bool {
	x0, x1 := span(r.X, r.W, g.TileW)
	y0, y1 := span(r.Y, r.H, g.TileH)
	x0, x1 = max(x0, 0), min(x1, g.W-1)
	y0, y1 = max(y0, 0), min(y1, g.H-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.tiles[y*g.W+x] == TileSolid {
				return true
			}
		}
	}
	return false
}

// SolidCount returns the number of solid cells.
func (g *Grid) SolidCount() int {
	n := 0
	for _, t := range g.tiles {
		if t == TileSolid {
			n++
		}
	}
	return n
}

// Rows renders the grid as text, one string per row, '#' for solid cells.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]byte, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.tiles[y*g.W+x] == TileSolid {
				buf[x] = '#'
			} else {
				buf[x] = '.'
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

// eps absorbs float noise so that a box whose edge sits exactly on a tile
// boundary is not counted as entering the neighbouring cell.
const eps = 1e-9

// span returns the inclusive range of cell indices covered by [lo, lo+size).
func span(lo, size, tile float64) (int, int) {
	first := int(math.Floor((lo + eps) / tile))
	last := int(math.Ceil((lo+size-eps)/tile)) - 1
	return first, last
}
