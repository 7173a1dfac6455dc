package mechanic

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/keymash/internal/core"
)

// Reroll interval bounds for the green key.
const (
	RerollMin = 1000 * time.Millisecond
	RerollMax = 2500 * time.Millisecond
)

// Correct draws three keys and lights one of them green. The green key is
// rerolled on its own clock, independent of player input; only the green
// key is valid.
type Correct struct {
	base
	chosen    []core.Key
	lastGreen core.Key
	elapsed   time.Duration
	interval  time.Duration
}

// NewCorrect creates a CorrectKey mechanic.
func NewCorrect(rng *rand.Rand) *Correct {
	return &Correct{base: newBase(CorrectKey, rng)}
}

// StartRound draws the three chosen keys, picks the first green key and
// schedules the first reroll.
func (m *Correct) StartRound(pool []core.Key) error {
	keys, err := m.distinctPool(pool)
	if err != nil {
		return err
	}
	m.chosen = m.pickN(keys, 3)
	m.lastGreen = core.KeyNone
	m.pickGreen()
	m.elapsed = 0
	m.schedule()
	m.emit(m.ActiveKeys())
	return nil
}

// HandleKey accepts only the green key.
func (m *Correct) HandleKey(key core.Key) Result {
	if key == m.current {
		return Valid
	}
	return Invalid
}

// Tick advances the reroll clock. At most one reroll happens per call.
func (m *Correct) Tick(dt time.Duration) {
	if m.chosen == nil {
		return
	}
	m.elapsed += dt
	if m.elapsed < m.interval {
		return
	}
	m.elapsed = 0
	m.schedule()
	m.pickGreen()
	m.emit(m.ActiveKeys())
}

// Capabilities declares the reroll clock.
func (m *Correct) Capabilities() Capabilities {
	return Capabilities{Ticker: m}
}

// ActiveKeys returns the three chosen keys.
func (m *Correct) ActiveKeys() []core.Key {
	if m.chosen == nil {
		return nil
	}
	out := make([]core.Key, len(m.chosen))
	copy(out, m.chosen)
	return out
}

// Interval returns the currently scheduled reroll interval.
func (m *Correct) Interval() time.Duration {
	return m.interval
}

// Elapsed returns the time accumulated towards the next reroll.
func (m *Correct) Elapsed() time.Duration {
	return m.elapsed
}

// schedule draws the next interval uniformly from [RerollMin, RerollMax].
func (m *Correct) schedule() {
	m.interval = RerollMin + time.Duration(m.rng.Int63n(int64(RerollMax-RerollMin)+1))
}

func (m *Correct) pickGreen() {
	m.current = m.pickExcept(m.chosen, m.lastGreen)
	m.lastGreen = m.current
}
