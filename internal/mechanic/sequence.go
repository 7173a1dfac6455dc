package mechanic

import (
	"math/rand"

	"github.com/vovakirdan/keymash/internal/core"
)

// Sequence shows a (current, next) pair of keys. Hitting current promotes
// next and draws a fresh next.
type Sequence struct {
	base
	pool []core.Key
	next core.Key
}

// NewSequence creates a KeySequence mechanic.
func NewSequence(rng *rand.Rand) *Sequence {
	return &Sequence{base: newBase(KeySequence, rng)}
}

// StartRound draws the initial pair. With a single-key pool next equals
// current.
func (m *Sequence) StartRound(pool []core.Key) error {
	keys, err := m.distinctPool(pool)
	if err != nil {
		return err
	}
	m.pool = keys
	m.current = m.pick(keys)
	m.next = m.pickExcept(keys, m.current)
	m.emit(m.ActiveKeys())
	return nil
}

// HandleKey advances the pair on a correct press. Wrong presses leave the
// pair unchanged.
func (m *Sequence) HandleKey(key core.Key) Result {
	if key != m.current {
		return Invalid
	}
	m.current = m.next
	m.next = m.pickExcept(m.pool, m.current)
	m.emit(m.ActiveKeys())
	return Valid
}

// Next returns the key that follows the current one.
func (m *Sequence) Next() core.Key {
	return m.next
}

// ActiveKeys returns [current, next].
func (m *Sequence) ActiveKeys() []core.Key {
	if m.current == core.KeyNone {
		return nil
	}
	return []core.Key{m.current, m.next}
}
