package core

import "testing"

// openWorld is a 160x160 pixel world with no solid cells.
func openWorld(t *testing.T) *World {
	t.Helper()
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = ".........."
	}
	return NewWorld(mustGrid(t, rows...))
}

func addEnemy(w *World, p Params, pos Vec) Enemy {
	return Enemy{Handle: w.AddActor(pos, p.EnemyW, p.EnemyH, EdgeClamp), Facing: 1, Alive: true}
}

func TestStompVersusFatal(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name      string
		vy        float64
		wantStomp bool
		wantFatal bool
	}{
		{"falling onto enemy", 50, true, false},
		{"rising into enemy", -10, false, true},
		{"standing on enemy level", 0, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := openWorld(t)
			// Player bottom at y=100, enemy top at y=104.
			pl := Player{
				Handle: w.AddActor(V(50, 100-p.PlayerH), p.PlayerW, p.PlayerH, EdgeClamp),
				Vel:    V(0, tc.vy),
			}
			enemies := []Enemy{addEnemy(w, p, V(48, 104))}

			enc := ResolveEncounters(w, &pl, enemies, p)

			if got := enc.Stomps == 1; got != tc.wantStomp {
				t.Errorf("stomps = %d, expected stomp %v", enc.Stomps, tc.wantStomp)
			}
			if enc.Fatal != tc.wantFatal {
				t.Errorf("Fatal = %v, expected %v", enc.Fatal, tc.wantFatal)
			}

			if tc.wantStomp {
				if pl.Vel.Y >= 0 {
					t.Errorf("stomp should bounce the player, vy = %v", pl.Vel.Y)
				}
				if want := -p.JumpSpeed * p.BounceFraction; pl.Vel.Y != want {
					t.Errorf("vy = %v, expected %v", pl.Vel.Y, want)
				}
				enemies = CompactEnemies(w, enemies)
				if len(enemies) != 0 {
					t.Errorf("stomped enemy should be removed, %d left", len(enemies))
				}
				if w.Len() != 1 {
					t.Errorf("world holds %d actors, expected only the player", w.Len())
				}
			}
			if tc.wantFatal && enc.Killer != 0 {
				t.Errorf("Killer = %d, expected 0", enc.Killer)
			}
		})
	}
}

func TestStompToleranceBoundary(t *testing.T) {
	p := DefaultParams()
	p.StompTolerance = 4

	tests := []struct {
		name      string
		bottom    float64
		wantStomp bool
		wantFatal bool
	}{
		{"reach only touches enemy top", 100, false, false},
		{"just inside reach", 101, true, false},
		{"overlapping within tolerance", 107, true, false},
		{"exactly at tolerance", 108, true, false},
		{"deeper than tolerance", 109, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := openWorld(t)
			pl := Player{
				Handle: w.AddActor(V(50, tc.bottom-p.PlayerH), p.PlayerW, p.PlayerH, EdgeClamp),
				Vel:    V(0, 120),
			}
			enemies := []Enemy{addEnemy(w, p, V(48, 104))}

			enc := ResolveEncounters(w, &pl, enemies, p)
			if got := enc.Stomps == 1; got != tc.wantStomp {
				t.Errorf("stomp = %v, expected %v", got, tc.wantStomp)
			}
			if enc.Fatal != tc.wantFatal {
				t.Errorf("Fatal = %v, expected %v", enc.Fatal, tc.wantFatal)
			}
		})
	}
}

func TestNoContactOutsideReach(t *testing.T) {
	p := DefaultParams()
	w := openWorld(t)
	pl := Player{Handle: w.AddActor(V(10, 10), p.PlayerW, p.PlayerH, EdgeClamp), Vel: V(0, 200)}
	enemies := []Enemy{
		addEnemy(w, p, V(100, 10)),
		addEnemy(w, p, V(10, 10+p.PlayerH+p.StompTolerance)),
	}

	enc := ResolveEncounters(w, &pl, enemies, p)
	if enc.Stomps != 0 || enc.Fatal {
		t.Errorf("got %+v, expected no contact", enc)
	}
	if pl.Vel.Y != 200 {
		t.Errorf("vy changed to %v without contact", pl.Vel.Y)
	}
}

func TestFatalContactStopsEvaluation(t *testing.T) {
	p := DefaultParams()

	// side overlaps the player well above its feet; below is stompable.
	setup := func(t *testing.T) (*World, Player, Enemy, Enemy) {
		w := openWorld(t)
		pl := Player{Handle: w.AddActor(V(50, 84), p.PlayerW, p.PlayerH, EdgeClamp), Vel: V(0, 60)}
		side := addEnemy(w, p, V(56, 80))
		below := addEnemy(w, p, V(48, 104))
		return w, pl, side, below
	}

	t.Run("fatal first", func(t *testing.T) {
		w, pl, side, below := setup(t)
		enemies := []Enemy{side, below}
		enc := ResolveEncounters(w, &pl, enemies, p)
		if !enc.Fatal || enc.Killer != 0 {
			t.Errorf("got %+v, expected fatal contact with enemy 0", enc)
		}
		if enc.Stomps != 0 || !enemies[1].Alive {
			t.Error("enemies after a fatal contact should not be evaluated")
		}
	})

	t.Run("stomp first", func(t *testing.T) {
		w, pl, side, below := setup(t)
		enemies := []Enemy{below, side}
		enc := ResolveEncounters(w, &pl, enemies, p)
		if enc.Stomps != 1 || !enc.Fatal || enc.Killer != 1 {
			t.Errorf("got %+v, expected one stomp then a fatal contact with enemy 1", enc)
		}
	})
}

func TestDoubleStompSameFrame(t *testing.T) {
	p := DefaultParams()
	w := openWorld(t)
	pl := Player{Handle: w.AddActor(V(60, 84), p.PlayerW, p.PlayerH, EdgeClamp), Vel: V(0, 100)}
	enemies := []Enemy{
		addEnemy(w, p, V(48, 104)),
		addEnemy(w, p, V(64, 102)),
	}

	enc := ResolveEncounters(w, &pl, enemies, p)
	if enc.Stomps != 2 || enc.Fatal {
		t.Errorf("got %+v, expected two stomps", enc)
	}
}

func TestCompactEnemiesKeepsOrder(t *testing.T) {
	p := DefaultParams()
	w := openWorld(t)
	enemies := []Enemy{
		addEnemy(w, p, V(0, 0)),
		addEnemy(w, p, V(20, 0)),
		addEnemy(w, p, V(40, 0)),
		addEnemy(w, p, V(60, 0)),
	}
	dead := []Handle{enemies[0].Handle, enemies[2].Handle}
	enemies[0].Alive = false
	enemies[2].Alive = false

	enemies = CompactEnemies(w, enemies)

	if len(enemies) != 2 {
		t.Fatalf("len = %d, expected 2", len(enemies))
	}
	if got := w.Pos(enemies[0].Handle).X; got != 20 {
		t.Errorf("first survivor X = %v, expected 20", got)
	}
	if got := w.Pos(enemies[1].Handle).X; got != 60 {
		t.Errorf("second survivor X = %v, expected 60", got)
	}
	for _, h := range dead {
		if w.Valid(h) {
			t.Errorf("%v should have been removed from the world", h)
		}
	}
}

// A player falling at max speed with the longest frame the stomp window
// allows must touch the enemy inside the window, whatever its phase.
func TestFastFallStillStomps(t *testing.T) {
	p := testParams()
	dt := 2 * p.StompTolerance / p.MaxFallSpeed
	enemyTop := 80 - p.EnemyH

	for i := range 13 {
		phase := float64(i) * 1.3
		g := mustGrid(t,
			"..........",
			"..........",
			"..........",
			"..........",
			"..........",
			"##########",
		)
		w := NewWorld(g)
		enemies := []Enemy{addEnemy(w, p, V(48, enemyTop))}
		start := V(48+(p.EnemyW-p.PlayerW)/2, enemyTop-p.PlayerH-20-phase)
		pl := Player{Handle: w.AddActor(start, p.PlayerW, p.PlayerH, EdgeClamp), Vel: V(0, p.MaxFallSpeed)}

		stomped := false
		for tick := 0; tick < 30 && !stomped; tick++ {
			pl.Update(w, noInput, p, dt)
			enc := ResolveEncounters(w, &pl, enemies, p)
			if enc.Fatal {
				t.Fatalf("phase %.1f: fatal contact at player bottom %v", phase, w.Rect(pl.Handle).Bottom())
			}
			stomped = enc.Stomps == 1
		}
		if !stomped {
			t.Errorf("phase %.1f: player never stomped the enemy", phase)
		}
	}
}
