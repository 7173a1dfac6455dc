// Package mechanic implements the input challenges that decide which
// keystrokes count as correct during a round.
//
// Each variant is tagged with a Kind and declares its optional capabilities
// (per-frame ticking, progress awareness) through Capabilities, so callers
// never need a type switch to find them.
package mechanic

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/events"
)

// ErrConfiguration reports a key pool or catalog entry that cannot support
// the requested mechanic.
var ErrConfiguration = errors.New("configuration error")

// Kind tags a mechanic variant.
type Kind int

const (
	SingleKey Kind = iota
	AlternateKeys
	SplitKeys
	KeySequence
	CorrectKey
)

// Kinds lists every variant in declaration order.
func Kinds() []Kind {
	return []Kind{SingleKey, AlternateKeys, SplitKeys, KeySequence, CorrectKey}
}

var kindNames = map[Kind]string{
	SingleKey:     "single_key",
	AlternateKeys: "alternate_keys",
	SplitKeys:     "split_keys",
	KeySequence:   "key_sequence",
	CorrectKey:    "correct_key",
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns a display name for the kind.
func (k Kind) Title() string {
	switch k {
	case SingleKey:
		return "Single Key"
	case AlternateKeys:
		return "Alternate Keys"
	case SplitKeys:
		return "Split Keys"
	case KeySequence:
		return "Key Sequence"
	case CorrectKey:
		return "Correct Key"
	default:
		return "Unknown"
	}
}

// MinKeys returns the minimum number of distinct keys the variant needs.
func (k Kind) MinKeys() int {
	switch k {
	case AlternateKeys, SplitKeys:
		return 2
	case CorrectKey:
		return 3
	default:
		return 1
	}
}

// ParseKind resolves a config name such as "split_keys".
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mechanic %q", ErrConfiguration, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mechanic %d", ErrConfiguration, int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Result is the outcome of a single keystroke.
type Result int

const (
	Invalid Result = iota
	Valid
)

// String returns "valid" or "invalid".
func (r Result) String() string {
	if r == Valid {
		return "valid"
	}
	return "invalid"
}

// Mechanic is the common contract of every variant.
type Mechanic interface {
	// Kind returns the variant tag.
	Kind() Kind

	// StartRound initializes variant state from pool and emits the initial
	// active keys. Fails with ErrConfiguration when the pool has fewer
	// distinct keys than Kind().MinKeys().
	StartRound(pool []core.Key) error

	// HandleKey classifies one accepted keystroke. Wrong keys are an
	// ordinary Invalid result, never an error.
	HandleKey(key core.Key) Result

	// CurrentKey is the key currently counted as correct.
	CurrentKey() core.Key

	// ActiveKeys is the set of keys on display for this round.
	ActiveKeys() []core.Key

	// KeysChanged fires with ActiveKeys whenever the displayed set or the
	// current key changes.
	KeysChanged() *events.Signal[[]core.Key]

	// Capabilities declares the optional behaviour of the variant.
	Capabilities() Capabilities
}

// Ticker is implemented by variants with an internal clock.
type Ticker interface {
	Tick(dt time.Duration)
}

// ProgressAware is implemented by variants whose state depends on round
// progress.
type ProgressAware interface {
	OnProgressChanged(progress, required int)
}

// Capabilities lists optional behaviour. Nil fields are absent.
type Capabilities struct {
	Ticker   Ticker
	Progress ProgressAware
}

// base carries the state shared by every variant.
type base struct {
	kind    Kind
	rng     *rand.Rand
	current core.Key
	changed events.Signal[[]core.Key]
}

func newBase(kind Kind, rng *rand.Rand) base {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return base{kind: kind, rng: rng}
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) CurrentKey() core.Key { return b.current }

func (b *base) KeysChanged() *events.Signal[[]core.Key] { return &b.changed }

func (b *base) Capabilities() Capabilities { return Capabilities{} }

func (b *base) emit(keys []core.Key) { b.changed.Emit(keys) }

// distinctPool returns pool with duplicates and KeyNone removed, checking
// it against the variant minimum.
func (b *base) distinctPool(pool []core.Key) ([]core.Key, error) {
	seen := make(map[core.Key]bool, len(pool))
	out := make([]core.Key, 0, len(pool))
	for _, k := range pool {
		if k == core.KeyNone || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	if need := b.kind.MinKeys(); len(out) < need {
		return nil, fmt.Errorf("%w: %s needs %d distinct keys, pool has %d",
			ErrConfiguration, b.kind, need, len(out))
	}
	return out, nil
}

// pick returns a random key from pool.
func (b *base) pick(pool []core.Key) core.Key {
	return pool[b.rng.Intn(len(pool))]
}

// pickExcept returns a random key from pool other than except. If pool has
// no other key, except is returned.
func (b *base) pickExcept(pool []core.Key, except core.Key) core.Key {
	candidates := make([]core.Key, 0, len(pool))
	for _, k := range pool {
		if k != except {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return except
	}
	return b.pick(candidates)
}

// pickN draws n distinct keys from an already de-duplicated pool.
func (b *base) pickN(pool []core.Key, n int) []core.Key {
	perm := b.rng.Perm(len(pool))
	out := make([]core.Key, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}
