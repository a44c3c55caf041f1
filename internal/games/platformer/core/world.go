package core

import (
	"fmt"
	"math"

	"github.com/yohamta/donburi"
)

// EdgeMode selects how the left and right world edges treat an actor.
// The top and bottom edges always block.
type EdgeMode uint8

const (
	// EdgeClamp makes the side edges solid walls.
	EdgeClamp EdgeMode = iota
	// EdgeOpen lets the actor leave through the sides; the controller is
	// expected to wrap it back in.
	EdgeOpen
)

// BodyData is the collision box of an actor.
type BodyData struct {
	Pos   Vec
	W, H  float64
	Edges EdgeMode
}

// Body is the component every actor entity carries.
var Body = donburi.NewComponentType[BodyData]()

// Handle identifies an actor registered with a World.
// The zero Handle never refers to a live actor.
type Handle struct {
	e donburi.Entity
}

func (h Handle) String() string {
	return fmt.Sprintf("actor#%d", h.e.Id())
}

// World owns the grid and the authoritative position of every actor, and
// moves actors one axis at a time without letting them enter solid cells.
type World struct {
	grid   *Grid
	ecs    donburi.World
	pixelW float64
	pixelH float64
}

// NewWorld creates an empty world over grid.
func NewWorld(grid *Grid) *World {
	pw, ph := grid.PixelSize()
	return &World{
		grid:   grid,
		ecs:    donburi.NewWorld(),
		pixelW: pw,
		pixelH: ph,
	}
}

// Grid returns the collision grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// Size returns the world size in pixels.
func (w *World) Size() (float64, float64) {
	return w.pixelW, w.pixelH
}

// AddActor registers a width×height box at pos.
// The position is not checked against the grid.
func (w *World) AddActor(pos Vec, width, height float64, edges EdgeMode) Handle {
	e := w.ecs.Create(Body)
	Body.Set(w.ecs.Entry(e), &BodyData{Pos: pos, W: width, H: height, Edges: edges})
	return Handle{e: e}
}

// RemoveActor unregisters an actor. Its handle becomes invalid.
func (w *World) RemoveActor(h Handle) {
	w.body(h)
	w.ecs.Remove(h.e)
}

// Valid reports whether h refers to a registered actor.
func (w *World) Valid(h Handle) bool {
	return h.e != donburi.Null && w.ecs.Valid(h.e)
}

// Len returns the number of registered actors.
func (w *World) Len() int {
	return w.ecs.Len()
}

// Pos returns the top-left corner of the actor.
func (w *World) Pos(h Handle) Vec {
	return w.body(h).Pos
}

// Rect returns the actor's box.
func (w *World) Rect(h Handle) Rect {
	b := w.body(h)
	return RectAt(b.Pos, b.W, b.H)
}

// Teleport moves the actor to pos without any collision test.
func (w *World) Teleport(h Handle, pos Vec) {
	w.body(h).Pos = pos
}

// CollideCheck reports whether the actor, placed at probe, would overlap a
// solid cell or cross a blocking world edge. The actor is not moved.
func (w *World) CollideCheck(h Handle, probe Vec) bool {
	b := w.body(h)
	r := RectAt(probe, b.W, b.H)
	if w.grid.Collides(r) {
		return true
	}
	if r.Y < -eps || r.Bottom() > w.pixelH+eps {
		return true
	}
	if b.Edges == EdgeClamp && (r.X < -eps || r.Right() > w.pixelW+eps) {
		return true
	}
	return false
}

// MoveH moves the actor dx pixels along X. The move sweeps every column the
// leading edge crosses; at the first blocked column the actor stops flush
// against it. It reports whether the move was cut short.
func (w *World) MoveH(h Handle, dx float64) bool {
	if dx == 0 {
		return false
	}
	b := w.body(h)
	g := w.grid
	y0, y1 := span(b.Pos.Y, b.H, g.TileH)

	if dx > 0 {
		right := b.Pos.X + b.W
		first := int(math.Ceil((right - eps) / g.TileW))
		last := int(math.Ceil((right+dx-eps)/g.TileW)) - 1
		last = min(last, g.W)
		for c := first; c <= last; c++ {
			if w.columnBlocked(c, y0, y1, b.Edges) {
				b.Pos.X = float64(c)*g.TileW - b.W
				return true
			}
		}
	} else {
		first := int(math.Floor((b.Pos.X+eps)/g.TileW)) - 1
		last := int(math.Floor((b.Pos.X + dx + eps) / g.TileW))
		last = max(last, -1)
		for c := first; c >= last; c-- {
			if w.columnBlocked(c, y0, y1, b.Edges) {
				b.Pos.X = float64(c+1) * g.TileW
				return true
			}
		}
	}
	b.Pos.X += dx
	return false
}

// MoveV moves the actor dy pixels along Y, with the same sweep as MoveH.
func (w *World) MoveV(h Handle, dy float64) bool {
	if dy == 0 {
		return false
	}
	b := w.body(h)
	g := w.grid
	x0, x1 := span(b.Pos.X, b.W, g.TileW)

	if dy > 0 {
		bottom := b.Pos.Y + b.H
		first := int(math.Ceil((bottom - eps) / g.TileH))
		last := int(math.Ceil((bottom+dy-eps)/g.TileH)) - 1
		last = min(last, g.H)
		for r := first; r <= last; r++ {
			if w.rowBlocked(r, x0, x1) {
				b.Pos.Y = float64(r)*g.TileH - b.H
				return true
			}
		}
	} else {
		first := int(math.Floor((b.Pos.Y+eps)/g.TileH)) - 1
		last := int(math.Floor((b.Pos.Y + dy + eps) / g.TileH))
		last = max(last, -1)
		for r := first; r >= last; r-- {
			if w.rowBlocked(r, x0, x1) {
				b.Pos.Y = float64(r+1) * g.TileH
				return true
			}
		}
	}
	b.Pos.Y += dy
	return false
}

// columnBlocked reports whether column c stops horizontal motion for a box
// covering rows y0..y1.
func (w *World) columnBlocked(c, y0, y1 int, edges EdgeMode) bool {
	g := w.grid
	if c < 0 || c >= g.W {
		return edges == EdgeClamp
	}
	for r := max(y0, 0); r <= min(y1, g.H-1); r++ {
		if g.tiles[r*g.W+c] == TileSolid {
			return true
		}
	}
	return false
}

// rowBlocked reports whether row r stops vertical motion for a box covering
// columns x0..x1. Rows outside the grid act as floor and ceiling.
func (w *World) rowBlocked(r, x0, x1 int) bool {
	g := w.grid
	if r < 0 || r >= g.H {
		return true
	}
	for c := max(x0, 0); c <= min(x1, g.W-1); c++ {
		if g.tiles[r*g.W+c] == TileSolid {
			return true
		}
	}
	return false
}

func (w *World) body(h Handle) *BodyData {
	if !w.Valid(h) {
		panic(fmt.Sprintf("physics: invalid actor handle %v", h))
	}
	return Body.Get(w.ecs.Entry(h.e))
}
