package core

import (
	"math/rand"
	"testing"
)

func TestMoveHHaltsAtWall(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		start   Vec
		dx      float64
		wantX   float64
		blocked bool
	}{
		{"free move", []string{"........"}, V(0, 0), 20.5, 20.5, false},
		{"right into wall", []string{"...#...."}, V(0, 0), 100, 32, true},
		{"left into wall", []string{"#......."}, V(40, 0), -100, 16, true},
		{"already flush right", []string{"..#....."}, V(16, 0), 5, 16, true},
		{"stop short of wall", []string{"....#..."}, V(0, 0), 30, 30, false},
		{"large delta cannot tunnel", []string{".....#.................."}, V(0, 0), 5000, 64, true},
		{"sub-pixel start", []string{"...#...."}, V(10.25, 0), 40, 32, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(mustGrid(t, tc.rows...))
			h := w.AddActor(tc.start, 16, 16, EdgeClamp)

			blocked := w.MoveH(h, tc.dx)
			if blocked != tc.blocked {
				t.Errorf("MoveH() blocked = %v, expected %v", blocked, tc.blocked)
			}
			if got := w.Pos(h).X; got != tc.wantX {
				t.Errorf("X = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestMoveVLandsAndHitsCeiling(t *testing.T) {
	g := mustGrid(t,
		"####",
		"....",
		"....",
		"....",
		"####",
	)

	w := NewWorld(g)
	h := w.AddActor(V(4, 16), 12, 16, EdgeClamp)

	if !w.MoveV(h, 500) {
		t.Error("falling onto the floor should be blocked")
	}
	if got := w.Pos(h).Y; got != 48 {
		t.Errorf("Y after landing = %v, expected 48", got)
	}

	if !w.MoveV(h, -500) {
		t.Error("jumping into the ceiling should be blocked")
	}
	if got := w.Pos(h).Y; got != 16 {
		t.Errorf("Y after ceiling hit = %v, expected 16", got)
	}
}

func TestWorldEdges(t *testing.T) {
	g := mustGrid(t,
		"....",
		"....",
	)

	t.Run("floor and ceiling always block", func(t *testing.T) {
		w := NewWorld(g)
		h := w.AddActor(V(0, 0), 16, 16, EdgeOpen)
		if !w.MoveV(h, 1000) || w.Pos(h).Y != 16 {
			t.Errorf("world floor should stop the actor at 16, got %v", w.Pos(h).Y)
		}
		if !w.MoveV(h, -1000) || w.Pos(h).Y != 0 {
			t.Errorf("world ceiling should stop the actor at 0, got %v", w.Pos(h).Y)
		}
	})

	t.Run("clamped sides block", func(t *testing.T) {
		w := NewWorld(g)
		h := w.AddActor(V(8, 0), 16, 16, EdgeClamp)
		if !w.MoveH(h, 1000) || w.Pos(h).X != 48 {
			t.Errorf("right edge should stop the actor at 48, got %v", w.Pos(h).X)
		}
		if !w.MoveH(h, -1000) || w.Pos(h).X != 0 {
			t.Errorf("left edge should stop the actor at 0, got %v", w.Pos(h).X)
		}
	})

	t.Run("open sides pass through", func(t *testing.T) {
		w := NewWorld(g)
		h := w.AddActor(V(8, 0), 16, 16, EdgeOpen)
		if w.MoveH(h, 100) {
			t.Error("open edge should not block")
		}
		if got := w.Pos(h).X; got != 108 {
			t.Errorf("X = %v, expected 108", got)
		}
	})
}

func TestMoveZeroIsNoop(t *testing.T) {
	w := NewWorld(mustGrid(t, "#.#", "###"))
	h := w.AddActor(V(16, 0), 16, 16, EdgeClamp)

	if w.MoveH(h, 0) || w.MoveV(h, 0) {
		t.Error("zero moves should never report a block")
	}
	if got := w.Pos(h); got != V(16, 0) {
		t.Errorf("position changed to %v", got)
	}
}

func TestCollideCheck(t *testing.T) {
	g := mustGrid(t,
		"..#.",
		"####",
	)
	w := NewWorld(g)
	h := w.AddActor(V(16, 0), 16, 16, EdgeClamp)

	tests := []struct {
		name  string
		probe Vec
		want  bool
	}{
		{"current position", V(16, 0), false},
		{"one pixel right", V(17, 0), true},
		{"one pixel down", V(16, 1), true},
		{"above world", V(0, -1), true},
		{"past left edge", V(-1, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.CollideCheck(h, tc.probe); got != tc.want {
				t.Errorf("CollideCheck(%v) = %v, expected %v", tc.probe, got, tc.want)
			}
		})
	}

	if got := w.Pos(h); got != V(16, 0) {
		t.Errorf("CollideCheck moved the actor to %v", got)
	}
}

func TestTeleportIgnoresCollision(t *testing.T) {
	w := NewWorld(mustGrid(t, "...#"))
	h := w.AddActor(V(0, 0), 16, 16, EdgeClamp)
	w.Teleport(h, V(48, 0))
	if got := w.Pos(h); got != V(48, 0) {
		t.Errorf("Pos() = %v, expected (48,0)", got)
	}
}

func TestInvalidHandlePanics(t *testing.T) {
	w := NewWorld(mustGrid(t, "...."))
	h := w.AddActor(V(0, 0), 16, 16, EdgeClamp)
	w.RemoveActor(h)

	tests := []struct {
		name string
		fn   func()
	}{
		{"removed handle", func() { w.Pos(h) }},
		{"zero handle", func() { w.MoveH(Handle{}, 1) }},
		{"double remove", func() { w.RemoveActor(h) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			tc.fn()
		})
	}

	if w.Valid(h) || w.Len() != 0 {
		t.Error("removed actor should no longer be valid")
	}
}

func TestSweepNeverEntersSolid(t *testing.T) {
	g := mustGrid(t,
		"####################",
		"#..................#",
		"#....##......#.....#",
		"#..........###.....#",
		"#...#..............#",
		"#......####....##..#",
		"#..................#",
		"#.##.........#.....#",
		"#..................#",
		"####################",
	)
	rng := rand.New(rand.NewSource(42))

	for _, size := range []Vec{{12, 16}, {16, 16}, {20, 30}, {5, 5}} {
		w := NewWorld(g)
		h := w.AddActor(V(17, 17), size.X, size.Y, EdgeClamp)
		if g.Collides(w.Rect(h)) {
			t.Fatalf("start position for %v overlaps a solid", size)
		}

		for i := 0; i < 2000; i++ {
			dx := (rng.Float64()*2 - 1) * 70
			dy := (rng.Float64()*2 - 1) * 70
			w.MoveH(h, dx)
			w.MoveV(h, dy)
			if r := w.Rect(h); g.Collides(r) {
				t.Fatalf("size %v step %d: %+v overlaps a solid cell", size, i, r)
			}
		}
	}
}
