package config

import (
	_ "embed"
)

// Mode identifiers with a dedicated default config.
const (
	ModeClassic = "bottles"
	ModeRush    = "bottles_rush"
)

//go:embed defaults/bottles.yaml
var defaultBottlesYAML []byte

//go:embed defaults/bottles_rush.yaml
var defaultRushYAML []byte

// DefaultBottlesConfig returns the Classic mode configuration.
// It mirrors defaults/bottles.yaml and is used when the embedded file fails to parse.
func DefaultBottlesConfig() BottlesConfig {
	return BottlesConfig{
		Physics: BottlesPhysics{
			BaseSpeed: 4.0,
			MaxSpeed:  30.0,
		},
		Spawn: BottlesSpawn{
			BaseInterval: 1.4,
			MinInterval:  0.25,
			MaxActive:    12,
			Attempts:     6,
		},
		Bottle: BottlesBottle{
			Width:    3,
			Height:   4,
			PoolSize: 16,
		},
		Tap: BottlesTap{
			SlopX: 1,
			SlopY: 0,
		},
		Burst: BottlesBurst{
			Ticks: 18,
		},
		Intensity: IntensityConfig{
			Steps:     9,
			Initial:   1,
			SpeedGain: 0.15,
			SpawnGain: 0.2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
			},
		},
	}
}

// DefaultRushConfig returns the Rush mode configuration.
func DefaultRushConfig() BottlesConfig {
	cfg := DefaultBottlesConfig()
	cfg.Physics = BottlesPhysics{BaseSpeed: 6.0, MaxSpeed: 40.0}
	cfg.Spawn = BottlesSpawn{BaseInterval: 0.9, MinInterval: 0.2, MaxActive: 16, Attempts: 8}
	cfg.Bottle.PoolSize = 24
	cfg.Tap = BottlesTap{SlopX: 1, SlopY: 1}
	cfg.Burst.Ticks = 12
	cfg.Intensity = IntensityConfig{Steps: 9, Initial: 4, SpeedGain: 0.12, SpawnGain: 0.18}
	cfg.Difficulty = DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 120}, // seconds
		Scaling:      ScalingConfig{SpeedMultiplier: 1.5, IntervalReduction: 0.6},
	}
	return cfg
}

// DefaultFor returns the hardcoded defaults for a mode.
// Unknown modes get the Classic defaults.
func DefaultFor(modeID string) BottlesConfig {
	if modeID == ModeRush {
		return DefaultRushConfig()
	}
	return DefaultBottlesConfig()
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(modeID string) []byte {
	switch modeID {
	case ModeClassic:
		return defaultBottlesYAML
	case ModeRush:
		return defaultRushYAML
	default:
		return nil
	}
}
