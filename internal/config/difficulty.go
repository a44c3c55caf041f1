package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.Speed *= 0.75
		cfg.Spawning.MaxEnemies = max(1, cfg.Spawning.MaxEnemies/2)
		cfg.Encounter.StompTolerance += 4
	case DifficultyHard:
		cfg.Enemy.Speed *= 1.5
		cfg.Spawning.MaxEnemies *= 2
		cfg.Spawning.Step = max(1, cfg.Spawning.Step-1)
		cfg.Encounter.StompTolerance = max(2, cfg.Encounter.StompTolerance/2)
		if cfg.Physics.MaxFallSpeed > 0 {
			cfg.Physics.MaxFrameTime = min(cfg.Physics.MaxFrameTime, 2*cfg.Encounter.StompTolerance/cfg.Physics.MaxFallSpeed)
		}
	}
}
