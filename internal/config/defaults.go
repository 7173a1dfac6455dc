package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/keymash.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration. It mirrors the
// embedded YAML and is used only if that fails to parse.
func DefaultConfig() Config {
	return Config{
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
		Scale: ScaleConfig{
			BaseTaps: 30,
			MaxTaps:  60,
			BaseTime: 15 * time.Second,
			MinTime:  6 * time.Second,
		},
		Countdown: CountdownConfig{
			Steps:          3,
			Step:           time.Second,
			Go:             500 * time.Millisecond,
			RequireConfirm: true,
		},
		Rounds: []RoundConfig{
			{Mechanic: "single_key", Keys: []string{"q", "d", "space"}},
			{Mechanic: "alternate_keys", Keys: []string{"q", "d"}},
			{Mechanic: "split_keys", Keys: []string{"q", "d"}},
			{Mechanic: "key_sequence", Keys: []string{"q", "d", "a", "e"}, TapMultiplier: 0.5},
			{Mechanic: "correct_key", Keys: []string{"a", "e", "t"}, TapMultiplier: 0.8, TimeMultiplier: 1.2},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
