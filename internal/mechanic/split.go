package mechanic

import (
	"math/rand"

	"github.com/vovakirdan/keymash/internal/core"
)

// Split asks for key A during the first half of the round and key B during
// the second. The phase follows round progress with a hysteresis band of
// 10% of the required taps so it does not flap around the midpoint.
type Split struct {
	base
	a, b        core.Key
	secondPhase bool
}

// NewSplit creates a SplitKeys mechanic.
func NewSplit(rng *rand.Rand) *Split {
	return &Split{base: newBase(SplitKeys, rng)}
}

// StartRound draws A and B and enters the first phase.
func (m *Split) StartRound(pool []core.Key) error {
	keys, err := m.distinctPool(pool)
	if err != nil {
		return err
	}
	pair := m.pickN(keys, 2)
	m.a, m.b = pair[0], pair[1]
	m.secondPhase = false
	m.current = m.a
	m.emit(m.ActiveKeys())
	return nil
}

// HandleKey accepts the key of the current phase. A miss in the first phase
// snaps the current key back to A; a miss in the second leaves B in place.
func (m *Split) HandleKey(key core.Key) Result {
	if key == m.current {
		return Valid
	}
	if !m.secondPhase {
		m.current = m.a
		m.emit(m.ActiveKeys())
	}
	return Invalid
}

// OnProgressChanged moves between phases. The second phase starts at
// progress >= required/2 and ends only below required/2 - required/10.
func (m *Split) OnProgressChanged(progress, required int) {
	half := float64(required) / 2
	band := float64(required) / 10
	p := float64(progress)

	switch {
	case !m.secondPhase && p >= half:
		m.secondPhase = true
		m.current = m.b
		m.emit(m.ActiveKeys())
	case m.secondPhase && p < half-band:
		m.secondPhase = false
		m.current = m.a
		m.emit(m.ActiveKeys())
	}
}

// SecondPhase reports whether B is the current key.
func (m *Split) SecondPhase() bool {
	return m.secondPhase
}

// Capabilities declares progress awareness.
func (m *Split) Capabilities() Capabilities {
	return Capabilities{Progress: m}
}

// ActiveKeys returns A and B.
func (m *Split) ActiveKeys() []core.Key {
	if m.current == core.KeyNone {
		return nil
	}
	return []core.Key{m.a, m.b}
}
