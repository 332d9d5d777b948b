// Package config provides YAML-based game configuration loading and
// difficulty management for Bottle Pop.
package config

import (
	"errors"
	"fmt"
)

// BottlesConfig contains all configuration for one Bottle Pop mode.
type BottlesConfig struct {
	Physics    BottlesPhysics   `yaml:"physics"`
	Spawn      BottlesSpawn     `yaml:"spawn"`
	Bottle     BottlesBottle    `yaml:"bottle"`
	Tap        BottlesTap       `yaml:"tap"`
	Burst      BottlesBurst     `yaml:"burst"`
	Intensity  IntensityConfig  `yaml:"intensity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BottlesPhysics defines fall speeds in cells per second.
type BottlesPhysics struct {
	BaseSpeed float64 `yaml:"base_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// BottlesSpawn defines how often new bottles appear.
type BottlesSpawn struct {
	BaseInterval float64 `yaml:"base_interval"` // Seconds between spawns at level 0, dial 0
	MinInterval  float64 `yaml:"min_interval"`  // Floor for the spawn interval
	MaxActive    int     `yaml:"max_active"`    // Live bottles allowed at once
	Attempts     int     `yaml:"attempts"`      // Column picks before a spawn is skipped
}

// BottlesBottle defines the bottle sprite size and pool capacity.
type BottlesBottle struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	PoolSize int `yaml:"pool_size"` // Bottles preallocated on reset
}

// BottlesTap defines how far a tap reaches beyond the touched cell.
type BottlesTap struct {
	SlopX int `yaml:"slop_x"`
	SlopY int `yaml:"slop_y"`
}

// BottlesBurst defines the pop animation.
type BottlesBurst struct {
	Ticks int `yaml:"ticks"`
}

// IntensityConfig defines the player-controlled intensity dial.
type IntensityConfig struct {
	Steps     int     `yaml:"steps"`      // Highest dial position (dial runs 0..steps)
	Initial   int     `yaml:"initial"`    // Dial position on reset
	SpeedGain float64 `yaml:"speed_gain"` // Fall speed factor added per dial step
	SpawnGain float64 `yaml:"spawn_gain"` // Spawn rate factor added per dial step
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score, or seconds for type time, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
}

// Validate reports every setting that would make the game unplayable.
func (c BottlesConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.BaseSpeed > 0, "physics.base_speed must be positive, got %g", c.Physics.BaseSpeed)
	check(c.Physics.MaxSpeed >= c.Physics.BaseSpeed, "physics.max_speed (%g) must be >= base_speed (%g)", c.Physics.MaxSpeed, c.Physics.BaseSpeed)
	check(c.Spawn.BaseInterval > 0, "spawn.base_interval must be positive, got %g", c.Spawn.BaseInterval)
	check(c.Spawn.MinInterval > 0, "spawn.min_interval must be positive, got %g", c.Spawn.MinInterval)
	check(c.Spawn.MinInterval <= c.Spawn.BaseInterval, "spawn.min_interval (%g) must be <= base_interval (%g)", c.Spawn.MinInterval, c.Spawn.BaseInterval)
	check(c.Spawn.MaxActive > 0, "spawn.max_active must be positive, got %d", c.Spawn.MaxActive)
	check(c.Spawn.Attempts > 0, "spawn.attempts must be positive, got %d", c.Spawn.Attempts)
	check(c.Bottle.Width > 0 && c.Bottle.Height > 0, "bottle size must be positive, got %dx%d", c.Bottle.Width, c.Bottle.Height)
	check(c.Bottle.PoolSize >= 0, "bottle.pool_size must not be negative, got %d", c.Bottle.PoolSize)
	check(c.Tap.SlopX >= 0 && c.Tap.SlopY >= 0, "tap slop must not be negative, got %d,%d", c.Tap.SlopX, c.Tap.SlopY)
	check(c.Burst.Ticks > 0, "burst.ticks must be positive, got %d", c.Burst.Ticks)
	check(c.Intensity.Steps >= 1, "intensity.steps must be at least 1, got %d", c.Intensity.Steps)
	check(c.Intensity.Initial >= 0 && c.Intensity.Initial <= c.Intensity.Steps,
		"intensity.initial (%d) must be within 0..%d", c.Intensity.Initial, c.Intensity.Steps)
	check(c.Intensity.SpeedGain >= 0 && c.Intensity.SpawnGain >= 0, "intensity gains must not be negative")

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}
	check(c.Difficulty.Scaling.IntervalReduction >= 0 && c.Difficulty.Scaling.IntervalReduction < 1,
		"difficulty.scaling.interval_reduction must be within [0, 1), got %g", c.Difficulty.Scaling.IntervalReduction)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid settings: %w", errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset.
// An empty string means "use the config file as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
