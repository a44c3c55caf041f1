package core

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// EnemyView is what a renderer needs to draw one enemy.
type EnemyView struct {
	Rect   Rect
	Facing int
}

// Frame is a read-only snapshot of a session for rendering.
type Frame struct {
	State    RunState
	Score    int
	Best     int
	Tick     uint64
	HasRun   bool
	Player   Rect
	Vel      Vec
	Grounded bool
	Enemies  []EnemyView
}

// Frame captures the current session state.
func (s *Session) Frame() Frame {
	f := Frame{
		State: s.state,
		Score: s.Score(),
		Best:  s.best,
	}
	r := s.run
	if r == nil {
		return f
	}
	f.HasRun = true
	f.Tick = r.Tick
	f.Player = r.World.Rect(r.Player.Handle)
	f.Vel = r.Player.Vel
	f.Grounded = r.Player.Grounded
	f.Enemies = make([]EnemyView, 0, len(r.Enemies))
	for _, e := range r.Enemies {
		f.Enemies = append(f.Enemies, EnemyView{
			Rect:   r.World.Rect(e.Handle),
			Facing: e.Facing,
		})
	}
	return f
}

// Hash returns a digest of the frame. Two sessions fed the same inputs
// produce the same sequence of hashes.
func (f Frame) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(v float64) {
		put(math.Float64bits(v))
	}
	put(uint64(f.State))
	put(uint64(f.Score))
	put(f.Tick)
	putF(f.Player.X)
	putF(f.Player.Y)
	putF(f.Vel.X)
	putF(f.Vel.Y)
	for _, e := range f.Enemies {
		putF(e.Rect.X)
		putF(e.Rect.Y)
		put(uint64(int64(e.Facing)))
	}
	return h.Sum64()
}
