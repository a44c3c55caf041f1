package core

// FindSpawns scans the grid row by row, top to bottom and left to right, and
// returns a standing position for every empty cell that sits directly on a
// solid one. The returned position is the top-left corner of an actorW×actorH
// box centred horizontally in the cell with its bottom edge on the solid
// cell's top. The bottom row has nothing beneath it and is never a candidate.
func FindSpawns(g *Grid, actorW, actorH float64) []Vec {
	var spawns []Vec
	for y := 0; y < g.H-1; y++ {
		for x := 0; x < g.W; x++ {
			if g.Solid(x, y) || !g.Solid(x, y+1) {
				continue
			}
			spawns = append(spawns, Vec{
				X: float64(x)*g.TileW + (g.TileW-actorW)/2,
				Y: float64(y+1)*g.TileH - actorH,
			})
		}
	}
	return spawns
}

// PickSpawns thins candidates down to at most limit entries by taking every
// step-th one, starting with the step-th. A step below one is treated as one.
func PickSpawns(candidates []Vec, step, limit int) []Vec {
	if step < 1 {
		step = 1
	}
	n := len(candidates) / step
	if limit >= 0 && n > limit {
		n = limit
	}
	picked := make([]Vec, 0, n)
	for i := range n {
		picked = append(picked, candidates[(i+1)*step-1])
	}
	return picked
}
