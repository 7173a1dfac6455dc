package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultParses(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default failed to parse: %v", err)
	}

	if cfg.Scale.BaseTaps != 30 || cfg.Scale.MaxTaps != 60 {
		t.Errorf("unexpected taps scale %+v", cfg.Scale)
	}
	if cfg.Scale.BaseTime != 15*time.Second || cfg.Scale.MinTime != 6*time.Second {
		t.Errorf("unexpected time scale %+v", cfg.Scale)
	}
	if cfg.Countdown.Steps != 3 || cfg.Countdown.Go != 500*time.Millisecond {
		t.Errorf("unexpected countdown %+v", cfg.Countdown)
	}
	if len(cfg.Rounds) == 0 {
		t.Fatal("embedded default should define rounds")
	}
	if cfg.Rounds[3].Mechanic != "key_sequence" || cfg.Rounds[3].TapMultiplier != 0.5 {
		t.Errorf("unexpected round 4 %+v", cfg.Rounds[3])
	}
}

func TestDefaultConfigMatchesEmbedded(t *testing.T) {
	embedded, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatal(err)
	}
	hard := DefaultConfig()

	if embedded.Scale != hard.Scale {
		t.Errorf("scale mismatch: %+v vs %+v", embedded.Scale, hard.Scale)
	}
	if embedded.Countdown != hard.Countdown {
		t.Errorf("countdown mismatch: %+v vs %+v", embedded.Countdown, hard.Countdown)
	}
	if embedded.Difficulty != hard.Difficulty {
		t.Errorf("difficulty mismatch: %+v vs %+v", embedded.Difficulty, hard.Difficulty)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := `
scale:
  base_taps: 5
  max_taps: 10
  base_time: 3s
  min_time: 1s
rounds:
  - mechanic: single_key
    keys: [q]
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scale.BaseTaps != 5 || cfg.Scale.BaseTime != 3*time.Second {
		t.Errorf("custom scale not loaded: %+v", cfg.Scale)
	}
	if len(cfg.Rounds) != 1 || cfg.Rounds[0].Keys[0] != "q" {
		t.Errorf("custom rounds not loaded: %+v", cfg.Rounds)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true})

	if d.Level(0) != 0 || d.Level(1) != 1 || d.Level(0.5) != 0.5 {
		t.Error("with initial 0 the level should equal t")
	}
	if d.Level(2) != 1 || d.Level(-1) != 0 {
		t.Error("t should be clamped to [0, 1]")
	}

	d.SetInitialLevel(0.3)
	if got := d.Level(0.5); math.Abs(got-0.65) > 1e-9 {
		t.Errorf("Level(0.5) from 0.3 = %v, expected 0.65", got)
	}

	d.SetEnabled(false)
	if d.Level(1) != 0.3 {
		t.Error("disabled progression should hold the initial level")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("empty preset should be accepted, got %q, %v", p, err)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("KEYMASH_FPS", "30")
	t.Setenv("KEYMASH_DIFFICULTY", "hard")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() failed: %v", err)
	}
	if e.FPS != 30 || e.Difficulty != "hard" {
		t.Errorf("unexpected env %+v", e)
	}
	if e.DBPath != "~/.keymash/results.db" {
		t.Errorf("DBPath default = %q", e.DBPath)
	}
}
