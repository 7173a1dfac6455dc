// Package round owns the round catalog, difficulty scaling and the
// orchestrator that runs one mechanic at a time against a timer.
package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/mechanic"
)

var (
	// ErrConfiguration reports a key pool too small for its mechanic or a
	// malformed catalog. It is the same value as mechanic.ErrConfiguration.
	ErrConfiguration = mechanic.ErrConfiguration

	// ErrRange reports a round index outside the shuffled catalog, or a
	// lookup before the catalog was shuffled.
	ErrRange = errors.New("range error")
)

// Definition is one author-configured catalog entry. Scaling never writes
// into a catalog entry; prepared rounds carry their own copy.
type Definition struct {
	Mechanic       mechanic.Kind
	Duration       time.Duration // Base time limit; 0 uses the scale's base time
	RequiredTaps   int           // Base tap count; 0 uses the scale's base taps
	Keys           []core.Key
	TapMultiplier  float64
	TimeMultiplier float64
}

// Validate checks the entry against its mechanic's requirements.
func (d Definition) Validate() error {
	distinct := make(map[core.Key]bool, len(d.Keys))
	for _, k := range d.Keys {
		if k != core.KeyNone {
			distinct[k] = true
		}
	}
	if need := d.Mechanic.MinKeys(); len(distinct) < need {
		return fmt.Errorf("%w: %s needs %d distinct keys, got %d", ErrConfiguration, d.Mechanic, need, len(distinct))
	}
	if d.TapMultiplier <= 0 || d.TimeMultiplier <= 0 {
		return fmt.Errorf("%w: %s multipliers must be positive (taps %v, time %v)",
			ErrConfiguration, d.Mechanic, d.TapMultiplier, d.TimeMultiplier)
	}
	if d.RequiredTaps < 0 || d.Duration < 0 {
		return fmt.Errorf("%w: %s has negative base taps or duration", ErrConfiguration, d.Mechanic)
	}
	return nil
}

// clone returns a copy that shares no memory with d.
func (d Definition) clone() Definition {
	out := d
	out.Keys = make([]core.Key, len(d.Keys))
	copy(out.Keys, d.Keys)
	return out
}

// DefinitionsFromConfig converts YAML round entries. Omitted multipliers
// default to 1.
func DefinitionsFromConfig(rounds []config.RoundConfig) ([]Definition, error) {
	defs := make([]Definition, 0, len(rounds))
	for i, rc := range rounds {
		kind, err := mechanic.ParseKind(rc.Mechanic)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		d := Definition{
			Mechanic:       kind,
			Duration:       rc.Duration,
			RequiredTaps:   rc.RequiredTaps,
			Keys:           core.Keys(rc.Keys...),
			TapMultiplier:  rc.TapMultiplier,
			TimeMultiplier: rc.TimeMultiplier,
		}
		if d.TapMultiplier == 0 {
			d.TapMultiplier = 1
		}
		if d.TimeMultiplier == 0 {
			d.TimeMultiplier = 1
		}
		defs = append(defs, d)
	}
	return defs, nil
}
