package core

// Encounter is the result of one resolution pass.
type Encounter struct {
	Stomps int
	Fatal  bool
	// Killer is the index of the enemy that caused the fatal contact, or -1.
	Killer int
}

// ResolveEncounters tests the player against every live enemy in order.
//
// Contact is tested with the player box stretched down by StompTolerance, so
// an enemy a few pixels below the player's feet already counts as touched.
// A contact is a stomp when the player is falling and its bottom edge is no
// more than StompTolerance below the enemy's top edge. Any other contact is
// fatal and ends the pass. The falling test uses the velocity the player had
// on entering the pass, so one bounce does not turn a second stomp in the
// same frame into a fatal hit.
//
// Stomped enemies are only marked dead here; CompactEnemies removes them.
func ResolveEncounters(w *World, pl *Player, enemies []Enemy, p Params) Encounter {
	out := Encounter{Killer: -1}
	falling := pl.Vel.Y > 0
	pr := w.Rect(pl.Handle)
	reach := pr.Grow(0, p.StompTolerance)

	for i := range enemies {
		e := &enemies[i]
		if !e.Alive {
			continue
		}
		er := w.Rect(e.Handle)
		if !reach.Intersects(er) {
			continue
		}
		if falling && pr.Bottom() <= er.Y+p.StompTolerance {
			e.Alive = false
			out.Stomps++
			pl.Vel.Y = -p.JumpSpeed * p.BounceFraction
			continue
		}
		out.Fatal = true
		out.Killer = i
		return out
	}
	return out
}

// CompactEnemies drops dead enemies from the slice and the world, keeping the
// order of the survivors. It reuses the backing array of enemies.
func CompactEnemies(w *World, enemies []Enemy) []Enemy {
	live := enemies[:0]
	for _, e := range enemies {
		if !e.Alive {
			if w.Valid(e.Handle) {
				w.RemoveActor(e.Handle)
			}
			continue
		}
		live = append(live, e)
	}
	clear(enemies[len(live):])
	return live
}
