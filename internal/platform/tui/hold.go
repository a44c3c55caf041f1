package tui

import "github.com/vovakirdan/tui-platformer/internal/core"

// holdTracker emulates held keys. Terminals send a key press and then
// repeats while the key is down, but never a release, so a direction stays
// held for a few ticks after its last press. Pressing the opposite
// direction releases the other one at once.
type holdTracker struct {
	ticks     int
	remaining map[core.Action]int
}

func newHoldTracker(ticks int) *holdTracker {
	return &holdTracker{
		ticks:     ticks,
		remaining: make(map[core.Action]int),
	}
}

// press records a key press of a.
func (h *holdTracker) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.remaining, core.ActionRight)
	case core.ActionRight:
		delete(h.remaining, core.ActionLeft)
	}
	h.remaining[a] = h.ticks
}

// apply marks every still-held action on frame and ages the holds by one tick.
func (h *holdTracker) apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		if n <= 0 {
			delete(h.remaining, a)
			continue
		}
		frame.Hold(a)
		h.remaining[a] = n - 1
	}
}

// reset releases everything.
func (h *holdTracker) reset() {
	clear(h.remaining)
}
