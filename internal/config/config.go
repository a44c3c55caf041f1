// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

import (
	"errors"
	"fmt"
)

// PlatformerConfig contains all configuration for the platformer.
// Lengths are in world pixels, speeds in pixels per second.
type PlatformerConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Spawning  SpawningConfig  `yaml:"spawning"`
	Encounter EncounterConfig `yaml:"encounter"`
	Level     LevelConfig     `yaml:"level"`
	Controls  ControlsConfig  `yaml:"controls"`
}

// PhysicsConfig defines world-wide physics parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	MaxFrameTime float64 `yaml:"max_frame_time"` // Upper bound on one frame's dt, in seconds
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	MoveSpeed      float64 `yaml:"move_speed"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	BounceFraction float64 `yaml:"bounce_fraction"` // Share of jump speed kept after a stomp
	Wrap           bool    `yaml:"wrap"`            // Leave one side, enter the other
}

// EnemyConfig defines enemy parameters and patrol probes.
type EnemyConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`
	WallProbeAhead  float64 `yaml:"wall_probe_ahead"`
	LedgeProbeAhead float64 `yaml:"ledge_probe_ahead"`
	LedgeProbeBelow float64 `yaml:"ledge_probe_below"`
}

// SpawningConfig defines how enemy spawns are sampled from the grid.
type SpawningConfig struct {
	Step       int `yaml:"step"`        // Use every step-th standing spot
	MaxEnemies int `yaml:"max_enemies"` // Upper bound on enemies per run
}

// EncounterConfig defines player/enemy contact parameters.
type EncounterConfig struct {
	StompTolerance float64 `yaml:"stomp_tolerance"`
}

// LevelConfig selects the collision layer and level catalogue.
type LevelConfig struct {
	Layer    string   `yaml:"layer"`
	SolidIDs []uint32 `yaml:"solid_ids"` // Empty means every placed tile is solid
	Default  string   `yaml:"default"`
	Dir      string   `yaml:"dir"` // Extra directory of level files; empty uses built-ins only
}

// ControlsConfig defines terminal input handling.
type ControlsConfig struct {
	// HoldTicks is how long a movement key counts as held after its last
	// key press. Terminals report repeats but never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// Validate reports every value that would make the simulation meaningless.
func (c PlatformerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	nonNegative("physics.gravity", c.Physics.Gravity)
	positive("physics.max_fall_speed", c.Physics.MaxFallSpeed)
	positive("physics.max_frame_time", c.Physics.MaxFrameTime)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	nonNegative("player.move_speed", c.Player.MoveSpeed)
	positive("player.jump_speed", c.Player.JumpSpeed)
	nonNegative("player.bounce_fraction", c.Player.BounceFraction)
	positive("enemy.width", c.Enemy.Width)
	positive("enemy.height", c.Enemy.Height)
	nonNegative("enemy.speed", c.Enemy.Speed)
	nonNegative("encounter.stomp_tolerance", c.Encounter.StompTolerance)
	positive("spawning.step", float64(c.Spawning.Step))
	nonNegative("spawning.max_enemies", float64(c.Spawning.MaxEnemies))
	nonNegative("controls.hold_ticks", float64(c.Controls.HoldTicks))
	// A fall longer than the stomp window in one frame can step over it.
	if fall, window := c.Physics.MaxFallSpeed*c.Physics.MaxFrameTime, 2*c.Encounter.StompTolerance; fall > window+1e-9 {
		errs = append(errs, fmt.Errorf("physics.max_frame_time: a fall of %.1f px per frame skips the %.1f px stomp window of encounter.stomp_tolerance", fall, window))
	}
	if c.Level.Layer == "" {
		errs = append(errs, errors.New("level.layer must be set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid platformer config: %w", errors.Join(errs...))
	}
	return nil
}
