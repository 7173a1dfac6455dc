package mechanic

import (
	"math/rand"

	"github.com/vovakirdan/keymash/internal/core"
)

// Alternate asks for two keys pressed in turn. Repeating a key is invalid.
type Alternate struct {
	base
	keys [2]core.Key
}

// NewAlternate creates an AlternateKeys mechanic.
func NewAlternate(rng *rand.Rand) *Alternate {
	return &Alternate{base: newBase(AlternateKeys, rng)}
}

// StartRound draws two distinct keys and picks which one comes first.
func (m *Alternate) StartRound(pool []core.Key) error {
	keys, err := m.distinctPool(pool)
	if err != nil {
		return err
	}
	pair := m.pickN(keys, 2)
	m.keys = [2]core.Key{pair[0], pair[1]}
	m.current = m.keys[m.rng.Intn(2)]
	m.emit(m.ActiveKeys())
	return nil
}

// HandleKey accepts the current key and toggles to the other one.
func (m *Alternate) HandleKey(key core.Key) Result {
	if key != m.current {
		return Invalid
	}
	m.current = m.other(key)
	m.emit(m.ActiveKeys())
	return Valid
}

// ActiveKeys returns both keys.
func (m *Alternate) ActiveKeys() []core.Key {
	if m.current == core.KeyNone {
		return nil
	}
	return []core.Key{m.keys[0], m.keys[1]}
}

func (m *Alternate) other(k core.Key) core.Key {
	if k == m.keys[0] {
		return m.keys[1]
	}
	return m.keys[0]
}
