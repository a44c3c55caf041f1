package core

import platformcore "github.com/vovakirdan/tui-platformer/internal/core"

// Input is what the controllers read each frame.
// Pressed is true only on the frame an action was triggered; Held stays true
// while the action is down.
type Input interface {
	Pressed(a platformcore.Action) bool
	Held(a platformcore.Action) bool
}

// Params holds every tunable of the simulation. Velocities are in pixels per
// second and accelerations in pixels per second squared.
type Params struct {
	Gravity      float64
	MaxFallSpeed float64

	PlayerW, PlayerH float64
	MoveSpeed        float64
	JumpSpeed        float64
	BounceFraction   float64
	WrapPlayer       bool

	EnemyW, EnemyH  float64
	EnemySpeed      float64
	WallProbeAhead  float64
	LedgeProbeAhead float64
	LedgeProbeBelow float64

	StompTolerance float64
	EnemyStep      int
	MaxEnemies     int
}

// DefaultParams returns values tuned for 16 pixel tiles.
func DefaultParams() Params {
	return Params{
		Gravity:         900,
		MaxFallSpeed:    480,
		PlayerW:         12,
		PlayerH:         16,
		MoveSpeed:       90,
		JumpSpeed:       330,
		BounceFraction:  0.6,
		WrapPlayer:      true,
		EnemyW:          16,
		EnemyH:          16,
		EnemySpeed:      40,
		WallProbeAhead:  1,
		LedgeProbeAhead: 16,
		LedgeProbeBelow: 1,
		StompTolerance:  8,
		EnemyStep:       3,
		MaxEnemies:      8,
	}
}

// Player is the single user-controlled actor of a run.
type Player struct {
	Handle   Handle
	Vel      Vec
	Grounded bool
}

// Enemy is a patrolling actor. Dead enemies are removed from the run by
// CompactEnemies.
type Enemy struct {
	Handle   Handle
	Vel      Vec
	Facing   int
	Alive    bool
	Grounded bool
}

// grounded probes one pixel under the actor.
func grounded(w *World, h Handle) bool {
	return w.CollideCheck(h, w.Pos(h).Add(0, 1))
}

// fall applies gravity to an airborne actor.
func fall(vy float64, onGround bool, p Params, dt float64) float64 {
	if onGround {
		if vy > 0 {
			return 0
		}
		return vy
	}
	return min(vy+p.Gravity*dt, p.MaxFallSpeed)
}

// moveBody runs the two single-axis sweeps, stops vertical velocity when the
// vertical sweep hits a floor or ceiling and reports whether the actor ended
// the move standing on something. An actor that ends less than a pixel above
// the floor is settled flush onto it.
func moveBody(w *World, h Handle, vel *Vec, dt float64) bool {
	if w.MoveH(h, vel.X*dt) {
		vel.X = 0
	}
	halted := w.MoveV(h, vel.Y*dt)
	if halted {
		vel.Y = 0
	}
	onGround := grounded(w, h)
	if onGround && vel.Y >= 0 {
		if !halted {
			w.MoveV(h, 1)
		}
		vel.Y = 0
	}
	return onGround
}

// Update advances the player by one frame.
func (pl *Player) Update(w *World, in Input, p Params, dt float64) {
	dir := 0.0
	if in.Held(platformcore.ActionLeft) {
		dir--
	}
	if in.Held(platformcore.ActionRight) {
		dir++
	}
	pl.Vel.X = dir * p.MoveSpeed

	onGround := grounded(w, pl.Handle)
	if onGround && in.Pressed(platformcore.ActionJump) {
		pl.Vel.Y = -p.JumpSpeed
	} else {
		pl.Vel.Y = fall(pl.Vel.Y, onGround, p, dt)
	}

	pl.Grounded = moveBody(w, pl.Handle, &pl.Vel, dt)
	pl.Vel.X = dir * p.MoveSpeed

	if p.WrapPlayer {
		wrapHorizontal(w, pl.Handle)
	}
}

// wrapHorizontal moves an actor that has fully left one side of the world
// flush against the opposite side.
func wrapHorizontal(w *World, h Handle) {
	r := w.Rect(h)
	worldW, _ := w.Size()
	switch {
	case r.Right() <= 0:
		w.Teleport(h, Vec{X: worldW - r.W, Y: r.Y})
	case r.X >= worldW:
		w.Teleport(h, Vec{X: 0, Y: r.Y})
	}
}

// Update advances the enemy by one frame. The turn-around decision is made
// before moving so it takes effect in the same frame.
func (e *Enemy) Update(w *World, p Params, dt float64) {
	if e.Facing == 0 {
		e.Facing = 1
	}
	onGround := grounded(w, e.Handle)
	if e.shouldTurn(w, p, onGround) {
		e.Facing = -e.Facing
	}
	e.Vel.X = float64(e.Facing) * p.EnemySpeed
	e.Vel.Y = fall(e.Vel.Y, onGround, p, dt)

	e.Grounded = moveBody(w, e.Handle, &e.Vel, dt)
}

// shouldTurn probes for a wall just ahead and, while standing, for a missing
// floor just ahead and below.
func (e *Enemy) shouldTurn(w *World, p Params, onGround bool) bool {
	pos := w.Pos(e.Handle)
	dir := float64(e.Facing)
	if w.CollideCheck(e.Handle, pos.Add(dir*p.WallProbeAhead, 0)) {
		return true
	}
	if onGround && !w.CollideCheck(e.Handle, pos.Add(dir*p.LedgeProbeAhead, p.LedgeProbeBelow)) {
		return true
	}
	return false
}
