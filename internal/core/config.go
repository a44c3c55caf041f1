package core

// RuntimeConfig is what the platform tells a game on Reset.
type RuntimeConfig struct {
	ScreenW, ScreenH int // Terminal size in cells
	TickRate         int // Fixed steps per second
}

// DefaultConfig is a classic 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a game's state the platform acts on: it records
// finished runs and decides which keys lead back to the menu.
type GameState struct {
	Score    int
	Ticks    int // Simulation ticks of the current run
	GameOver bool
	Paused   bool
}

// StepResult reports the outcome of one tick.
type StepResult struct {
	State GameState
}
