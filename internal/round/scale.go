package round

import (
	"fmt"
	"time"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/mechanic"
)

// Scale holds the endpoints that round position interpolates between.
type Scale struct {
	BaseTaps int
	MaxTaps  int
	BaseTime time.Duration
	MinTime  time.Duration
	Jitter   float64 // Fractional +/- band on the duration; 0 disables
}

// ScaleFromConfig converts the YAML scale section.
func ScaleFromConfig(c config.ScaleConfig) Scale {
	return Scale{
		BaseTaps: c.BaseTaps,
		MaxTaps:  c.MaxTaps,
		BaseTime: c.BaseTime,
		MinTime:  c.MinTime,
		Jitter:   c.Jitter,
	}
}

// Validate rejects scales that would produce empty or instant rounds.
func (s Scale) Validate() error {
	if s.BaseTaps < 1 || s.MaxTaps < 1 {
		return fmt.Errorf("round: %w: tap scale must be positive (%d..%d)", ErrConfiguration, s.BaseTaps, s.MaxTaps)
	}
	if s.BaseTime <= 0 || s.MinTime <= 0 {
		return fmt.Errorf("round: %w: time scale must be positive (%v..%v)", ErrConfiguration, s.BaseTime, s.MinTime)
	}
	if s.BaseTaps > s.MaxTaps {
		return fmt.Errorf("round: %w: base taps %d above max taps %d", ErrConfiguration, s.BaseTaps, s.MaxTaps)
	}
	if s.BaseTime < s.MinTime {
		return fmt.Errorf("round: %w: base time %v below min time %v", ErrConfiguration, s.BaseTime, s.MinTime)
	}
	if s.Jitter < 0 || s.Jitter >= 1 {
		return fmt.Errorf("round: %w: jitter %v outside [0, 1)", ErrConfiguration, s.Jitter)
	}
	return nil
}

// ValidateDefinition rejects per-round overrides that fall outside the
// scale, since later rounds would then ask for fewer taps or more time.
func (s Scale) ValidateDefinition(def Definition) error {
	if def.RequiredTaps > s.MaxTaps {
		return fmt.Errorf("round: %w: %s required taps %d above max taps %d",
			ErrConfiguration, def.Mechanic, def.RequiredTaps, s.MaxTaps)
	}
	if def.Duration > 0 && def.Duration < s.MinTime {
		return fmt.Errorf("round: %w: %s duration %v below min time %v",
			ErrConfiguration, def.Mechanic, def.Duration, s.MinTime)
	}
	return nil
}

// ValidateCatalog checks every catalog entry against the scale.
func (s Scale) ValidateCatalog(c *Catalog) error {
	for _, def := range c.Entries() {
		if err := s.ValidateDefinition(def); err != nil {
			return err
		}
	}
	return nil
}

// Position maps a round index to t = (index+1)/(total-1), clamped to
// [0, 1]. A single-round session has t = 0.
func Position(index, total int) float64 {
	if total <= 1 {
		return 0
	}
	return core.ClampF(float64(index+1)/float64(total-1), 0, 1)
}

// TimeCorrection returns the per-mechanic duration factor. KeySequence
// resolves slowly per correct press; the fixed-key mechanics resolve fast.
func TimeCorrection(kind mechanic.Kind) float64 {
	switch kind {
	case mechanic.KeySequence:
		return 3
	case mechanic.SingleKey, mechanic.AlternateKeys, mechanic.SplitKeys:
		return 0.5
	default:
		return 1
	}
}

// Scaler computes required taps and durations for a round position.
type Scaler struct {
	scale      Scale
	difficulty *config.DifficultyManager
}

// NewScaler creates a scaler. A nil difficulty manager means progression
// enabled from level 0, so the level equals the round position.
func NewScaler(scale Scale, difficulty *config.DifficultyManager) *Scaler {
	if difficulty == nil {
		difficulty = config.NewDifficultyManager(config.DifficultyConfig{Enabled: true})
	}
	return &Scaler{scale: scale, difficulty: difficulty}
}

// Level returns the difficulty level for a round position.
func (s *Scaler) Level(index, total int) float64 {
	return s.difficulty.Level(Position(index, total))
}

// RequiredTaps returns round(round(lerp(base, max, level)) * tapMultiplier),
// at least 1.
func (s *Scaler) RequiredTaps(def Definition, index, total int) int {
	base := s.scale.BaseTaps
	if def.RequiredTaps > 0 {
		base = def.RequiredTaps
	}
	level := s.Level(index, total)
	perRound := core.RoundToInt(core.Lerp(float64(base), float64(s.scale.MaxTaps), level))
	return core.Max(1, core.RoundToInt(float64(perRound)*def.TapMultiplier))
}

// Duration returns lerp(base, min, level) * timeMultiplier with the
// mechanic correction applied.
func (s *Scaler) Duration(def Definition, index, total int) time.Duration {
	base := s.scale.BaseTime
	if def.Duration > 0 {
		base = def.Duration
	}
	level := s.Level(index, total)
	d := core.Lerp(float64(base), float64(s.scale.MinTime), level)
	d *= def.TimeMultiplier * TimeCorrection(def.Mechanic)
	return time.Duration(d)
}
