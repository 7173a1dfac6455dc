package mechanic

import (
	"math/rand"

	"github.com/vovakirdan/keymash/internal/core"
)

// Single asks for one key, drawn at start, pressed repeatedly.
type Single struct {
	base
}

// NewSingle creates a SingleKey mechanic.
func NewSingle(rng *rand.Rand) *Single {
	return &Single{base: newBase(SingleKey, rng)}
}

// StartRound draws the key for the round.
func (m *Single) StartRound(pool []core.Key) error {
	keys, err := m.distinctPool(pool)
	if err != nil {
		return err
	}
	m.current = m.pick(keys)
	m.emit(m.ActiveKeys())
	return nil
}

// HandleKey accepts only the drawn key.
func (m *Single) HandleKey(key core.Key) Result {
	if key == m.current {
		return Valid
	}
	return Invalid
}

// ActiveKeys returns the single key.
func (m *Single) ActiveKeys() []core.Key {
	if m.current == core.KeyNone {
		return nil
	}
	return []core.Key{m.current}
}
