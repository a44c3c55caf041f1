package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:      900,
			MaxFallSpeed: 480,
			MaxFrameTime: 0.03,
		},
		Player: PlayerConfig{
			Width:          12,
			Height:         16,
			MoveSpeed:      90,
			JumpSpeed:      330,
			BounceFraction: 0.6,
			Wrap:           true,
		},
		Enemy: EnemyConfig{
			Width:           16,
			Height:          16,
			Speed:           40,
			WallProbeAhead:  1,
			LedgeProbeAhead: 16,
			LedgeProbeBelow: 1,
		},
		Spawning: SpawningConfig{
			Step:       3,
			MaxEnemies: 8,
		},
		Encounter: EncounterConfig{
			StompTolerance: 8,
		},
		Level: LevelConfig{
			Layer:   "solid",
			Default: "01-meadow",
		},
		Controls: ControlsConfig{
			HoldTicks: 8,
		},
	}
}
