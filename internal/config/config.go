// Package config provides YAML-based round catalog configuration and
// difficulty management for the game.
package config

import "time"

// Config contains the round catalog and everything that scales it.
type Config struct {
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scale      ScaleConfig      `yaml:"scale"`
	Countdown  CountdownConfig  `yaml:"countdown"`
	Rounds     []RoundConfig    `yaml:"rounds"`
}

// DifficultyConfig defines how the round position maps to a difficulty level.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
}

// ScaleConfig defines the endpoints interpolated across the session.
type ScaleConfig struct {
	BaseTaps int           `yaml:"base_taps"` // Required taps at level 0
	MaxTaps  int           `yaml:"max_taps"`  // Required taps at level 1
	BaseTime time.Duration `yaml:"base_time"` // Time limit at level 0
	MinTime  time.Duration `yaml:"min_time"`  // Time limit at level 1

	// Jitter randomizes the scaled duration by +/- this fraction.
	// 0 keeps durations deterministic.
	Jitter float64 `yaml:"jitter"`
}

// CountdownConfig defines the pre-round countdown.
type CountdownConfig struct {
	Steps          int           `yaml:"steps"`           // Numbered beats (3, 2, 1)
	Step           time.Duration `yaml:"step"`            // Length of each numbered beat
	Go             time.Duration `yaml:"go"`              // Length of the final "go" beat
	RequireConfirm bool          `yaml:"require_confirm"` // Wait for Enter before counting
}

// RoundConfig is one catalog entry as written in YAML.
type RoundConfig struct {
	Mechanic       string        `yaml:"mechanic"`
	Duration       time.Duration `yaml:"duration,omitempty"`      // Overrides scale.base_time
	RequiredTaps   int           `yaml:"required_taps,omitempty"` // Overrides scale.base_taps
	Keys           []string      `yaml:"keys"`
	TapMultiplier  float64       `yaml:"tap_multiplier,omitempty"`  // 1.5 = 50% more taps
	TimeMultiplier float64       `yaml:"time_multiplier,omitempty"` // 2.0 = double time
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
