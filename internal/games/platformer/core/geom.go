package core

import "fmt"

// Vec is a point or displacement in world pixels.
// X increases to the right, Y increases downward (screen coordinates).
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v offset by (dx, dy).
func (v Vec) Add(dx, dy float64) Vec {
	return Vec{X: v.X + dx, Y: v.Y + dy}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Rect is an axis-aligned box in world pixels, anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAt builds a rectangle of size w×h with its top-left corner at p.
func RectAt(p Vec, w, h float64) Rect {
	return Rect{X: p.X, Y: p.Y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Pos returns the top-left corner.
func (r Rect) Pos() Vec {
	return Vec{X: r.X, Y: r.Y}
}

// Intersects reports whether two rectangles overlap with positive area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Grow returns r extended by dw to the right and dh downward.
func (r Rect) Grow(dw, dh float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W + dw, H: r.H + dh}
}
