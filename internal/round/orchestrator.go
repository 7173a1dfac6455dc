package round

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/events"
	"github.com/vovakirdan/keymash/internal/input"
	"github.com/vovakirdan/keymash/internal/mechanic"
	"github.com/vovakirdan/keymash/internal/registry"
)

// Round is a prepared round. Its Definition holds the scaled values for
// this play-through, never the catalog's base values.
type Round struct {
	Index int
	Definition
}

// Progress is the payload of input signals.
type Progress struct {
	Current  int
	Required int
}

// ActiveKeys is the payload of ActiveKeysChanged. An empty Keys slice
// means no mechanic is bound.
type ActiveKeys struct {
	Keys    []core.Key
	Current core.Key
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRand sets the random source shared by shuffling and mechanics.
func WithRand(rng *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = rng }
}

// WithRegistry replaces the default mechanic registry.
func WithRegistry(r *registry.Registry) Option {
	return func(o *Orchestrator) { o.registry = r }
}

// WithDifficulty sets the difficulty manager used by the scaler.
func WithDifficulty(d *config.DifficultyManager) Option {
	return func(o *Orchestrator) { o.difficulty = d }
}

// Orchestrator runs one round at a time: it owns the current mechanic,
// the countdown timer and tap progress, and routes gated input.
type Orchestrator struct {
	gate       *input.Gate
	catalog    *Catalog
	scale      Scale
	scaler     *Scaler
	registry   *registry.Registry
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	mech     mechanic.Mechanic
	caps     mechanic.Capabilities
	subs     events.Unsubscribers
	round    Round
	progress int
	timer    time.Duration
	active   bool
	accept   func() bool

	RoundPrepared     events.Signal[Round]
	RoundStarted      events.Signal[Round]
	ValidInput        events.Signal[Progress]
	InvalidInput      events.Signal[Progress]
	RoundEnded        events.Signal[bool]
	ActiveKeysChanged events.Signal[ActiveKeys]
}

// NewOrchestrator creates an orchestrator over catalog. The gate must not
// be shared with another orchestrator.
func NewOrchestrator(gate *input.Gate, catalog *Catalog, scale Scale, opts ...Option) (*Orchestrator, error) {
	if gate == nil || catalog == nil {
		return nil, fmt.Errorf("round: %w: gate and catalog are required", ErrConfiguration)
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if err := scale.ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	o := &Orchestrator{
		gate:    gate,
		catalog: catalog,
		scale:   scale,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.registry == nil {
		o.registry = registry.Default()
	}
	o.scaler = NewScaler(scale, o.difficulty)
	return o, nil
}

// SetInputFilter installs a predicate consulted before a key reaches the
// mechanic. A nil filter accepts everything.
func (o *Orchestrator) SetInputFilter(accept func() bool) {
	o.accept = accept
}

// ShuffleRounds draws a fresh round order for a new session.
func (o *Orchestrator) ShuffleRounds() {
	o.catalog.Shuffle(o.rng)
	o.logger.Debug("rounds shuffled", "count", o.catalog.Len())
}

// PrepareRound tears down any bound mechanic, then creates and binds the
// mechanic for the shuffled round at index with input disabled. On error
// nothing is bound and RoundPrepared is not emitted.
func (o *Orchestrator) PrepareRound(index int) error {
	def, err := o.catalog.Round(index)
	if err != nil {
		return err
	}

	o.unbind()

	m, err := o.registry.Create(def.Mechanic, o.rng)
	if err != nil {
		return fmt.Errorf("round: prepare %d: %w", index, err)
	}
	o.subs.Add(m.KeysChanged().Subscribe(func(keys []core.Key) {
		o.ActiveKeysChanged.Emit(ActiveKeys{Keys: keys, Current: m.CurrentKey()})
	}))
	if err := m.StartRound(def.Keys); err != nil {
		o.subs.Release()
		o.logger.Warn("round setup failed", "index", index, "mechanic", def.Mechanic, "error", err)
		return fmt.Errorf("round: prepare %d: %w", index, err)
	}

	o.mech = m
	o.caps = m.Capabilities()
	o.round = o.scaleRound(def, index)
	o.progress = 0
	o.timer = o.round.Duration

	o.gate.Bind(o.handleKey)
	o.gate.Enable(false)

	o.logger.Debug("round prepared",
		"index", index,
		"mechanic", def.Mechanic,
		"taps", o.round.RequiredTaps,
		"duration", o.round.Duration,
	)
	o.RoundPrepared.Emit(o.round)
	return nil
}

// StartPreparedRound enables input and starts the timer. It is a no-op when
// no mechanic is bound or the round is already running.
func (o *Orchestrator) StartPreparedRound() {
	if o.mech == nil || o.active {
		return
	}
	o.timer = o.round.Duration
	o.active = true
	o.gate.Enable(true)
	o.logger.Debug("round started", "index", o.round.Index)
	o.RoundStarted.Emit(o.round)
}

// EndRound finishes the current round and emits RoundEnded. Calling it with
// nothing bound does nothing.
func (o *Orchestrator) EndRound(won bool) {
	if o.mech == nil {
		return
	}
	o.unbind()
	o.logger.Debug("round ended", "index", o.round.Index, "won", won, "progress", o.progress)
	o.RoundEnded.Emit(won)
}

// ResetCurrentRound tears down the current round without emitting
// RoundEnded.
func (o *Orchestrator) ResetCurrentRound() {
	o.unbind()
}

// Tick advances the round timer by dt, then the mechanic's own clock.
// Expiry ends the round as a loss before the mechanic sees the tick.
func (o *Orchestrator) Tick(dt time.Duration) {
	if !o.active {
		return
	}
	o.timer -= dt
	if o.timer <= 0 {
		o.timer = 0
		o.EndRound(false)
		return
	}
	if t := o.caps.Ticker; t != nil {
		t.Tick(dt)
	}
}

func (o *Orchestrator) handleKey(key core.Key) {
	m := o.mech
	if m == nil || !o.active {
		return
	}
	if o.accept != nil && !o.accept() {
		return
	}
	res := m.HandleKey(key)

	required := o.round.RequiredTaps
	if res == mechanic.Valid {
		o.progress = core.Min(o.progress+1, required)
	} else {
		o.progress = core.Max(o.progress-1, 0)
	}
	if p := o.caps.Progress; p != nil {
		p.OnProgressChanged(o.progress, required)
	}

	payload := Progress{Current: o.progress, Required: required}
	if res == mechanic.Valid {
		o.ValidInput.Emit(payload)
		if o.progress >= required {
			o.EndRound(true)
		}
		return
	}
	o.InvalidInput.Emit(payload)
}

func (o *Orchestrator) unbind() {
	hadKeys := o.mech != nil
	o.active = false
	o.gate.Enable(false)
	o.gate.Unbind()
	o.subs.Release()
	o.mech = nil
	o.caps = mechanic.Capabilities{}
	if hadKeys {
		o.ActiveKeysChanged.Emit(ActiveKeys{})
	}
}

func (o *Orchestrator) scaleRound(def Definition, index int) Round {
	total := o.catalog.Len()
	scaled := def.clone()
	scaled.RequiredTaps = o.scaler.RequiredTaps(def, index, total)
	scaled.Duration = o.scaler.Duration(def, index, total)
	if j := o.scale.Jitter; j > 0 {
		factor := 1 + (o.rng.Float64()*2-1)*j
		scaled.Duration = time.Duration(float64(scaled.Duration) * factor)
	}
	return Round{Index: index, Definition: scaled}
}

// CurrentRound returns the prepared round, if any.
func (o *Orchestrator) CurrentRound() (Round, bool) {
	if o.mech == nil {
		return Round{}, false
	}
	return o.round, true
}

// Progress returns the tap count of the current round.
func (o *Orchestrator) Progress() int {
	return o.progress
}

// RequiredTaps returns the scaled tap goal of the current round.
func (o *Orchestrator) RequiredTaps() int {
	return o.round.RequiredTaps
}

// RemainingTime returns the time left on the round timer.
func (o *Orchestrator) RemainingTime() time.Duration {
	return o.timer
}

// CurrentKey returns the mechanic's current key, or KeyNone.
func (o *Orchestrator) CurrentKey() core.Key {
	if o.mech == nil {
		return core.KeyNone
	}
	return o.mech.CurrentKey()
}

// ActiveKeys returns the keys the bound mechanic displays.
func (o *Orchestrator) ActiveKeys() []core.Key {
	if o.mech == nil {
		return nil
	}
	return o.mech.ActiveKeys()
}

// Mechanic returns the bound mechanic, or nil.
func (o *Orchestrator) Mechanic() mechanic.Mechanic {
	return o.mech
}

// IsActive reports whether a round is running.
func (o *Orchestrator) IsActive() bool {
	return o.active
}

// HasPrepared reports whether a mechanic is bound.
func (o *Orchestrator) HasPrepared() bool {
	return o.mech != nil
}

// TotalRounds returns the number of rounds per session.
func (o *Orchestrator) TotalRounds() int {
	return o.catalog.Len()
}
