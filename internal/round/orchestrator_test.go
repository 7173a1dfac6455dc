package round

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/keymash/internal/input"
	"github.com/vovakirdan/keymash/internal/mechanic"
	"github.com/vovakirdan/keymash/internal/registry"
)

var flatScale = Scale{BaseTaps: 5, MaxTaps: 5, BaseTime: 10 * time.Second, MinTime: 10 * time.Second}

func newTestOrchestrator(t *testing.T, scale Scale, defs ...Definition) (*Orchestrator, *input.Gate) {
	t.Helper()
	c, err := NewCatalog(defs)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	gate := input.NewGate()
	o, err := NewOrchestrator(gate, c, scale, WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return o, gate
}

func TestPrepareRoundBeforeShuffle(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))

	if err := o.PrepareRound(0); !errors.Is(err, ErrRange) {
		t.Errorf("PrepareRound before shuffle error = %v, expected ErrRange", err)
	}
	o.ShuffleRounds()
	if err := o.PrepareRound(3); !errors.Is(err, ErrRange) {
		t.Errorf("PrepareRound(3) error = %v, expected ErrRange", err)
	}
	if gate.Bound() || o.HasPrepared() {
		t.Error("failed prepare left a handler bound")
	}
}

func TestPrepareRoundBindsDisabled(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()

	var prepared []Round
	o.RoundPrepared.Subscribe(func(r Round) { prepared = append(prepared, r) })

	if err := o.PrepareRound(0); err != nil {
		t.Fatalf("PrepareRound() error = %v", err)
	}
	if len(prepared) != 1 || prepared[0].RequiredTaps != 5 || prepared[0].Duration != 5*time.Second {
		t.Fatalf("RoundPrepared payload = %+v", prepared)
	}
	if !gate.Bound() || gate.Enabled() {
		t.Errorf("gate bound=%v enabled=%v, expected bound and disabled", gate.Bound(), gate.Enabled())
	}
	if o.IsActive() {
		t.Error("round active before StartPreparedRound")
	}
	if gate.Press("q") {
		t.Error("press delivered before round start")
	}
	if o.Progress() != 0 {
		t.Errorf("Progress() = %d, expected 0", o.Progress())
	}
}

func TestPrepareRoundUnknownMechanic(t *testing.T) {
	c, _ := NewCatalog([]Definition{def(mechanic.SingleKey, "q")})
	gate := input.NewGate()
	o, err := NewOrchestrator(gate, c, flatScale, WithRegistry(registry.New()))
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	o.ShuffleRounds()

	emitted := false
	o.RoundPrepared.Subscribe(func(Round) { emitted = true })

	if err := o.PrepareRound(0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("PrepareRound error = %v, expected ErrConfiguration", err)
	}
	if emitted || gate.Bound() || o.HasPrepared() {
		t.Error("failed prepare bound a mechanic or emitted RoundPrepared")
	}
}

func TestSingleKeyRoundWins(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	if err := o.PrepareRound(0); err != nil {
		t.Fatalf("PrepareRound() error = %v", err)
	}

	var valid []Progress
	var ended []bool
	o.ValidInput.Subscribe(func(p Progress) { valid = append(valid, p) })
	o.RoundEnded.Subscribe(func(won bool) { ended = append(ended, won) })

	o.StartPreparedRound()
	if !gate.Enabled() || !o.IsActive() {
		t.Fatal("round not running after StartPreparedRound")
	}

	for i := 0; i < 4; i++ {
		gate.Press("q")
	}
	if len(ended) != 0 {
		t.Fatalf("round ended after 4 taps")
	}
	gate.Press("q")

	if len(valid) != 5 || valid[4].Current != 5 || valid[4].Required != 5 {
		t.Errorf("ValidInput = %+v, expected 5 emissions ending at 5/5", valid)
	}
	if len(ended) != 1 || !ended[0] {
		t.Errorf("RoundEnded = %v, expected [true]", ended)
	}
	if gate.Bound() || gate.Enabled() || o.IsActive() {
		t.Error("gate still live after round end")
	}
}

func TestInvalidInputDecrementsFloored(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	var invalid []Progress
	o.InvalidInput.Subscribe(func(p Progress) { invalid = append(invalid, p) })

	gate.Press("w")
	if o.Progress() != 0 {
		t.Errorf("Progress after miss at 0 = %d, expected 0", o.Progress())
	}
	gate.Press("q")
	gate.Press("q")
	gate.Press("w")
	if o.Progress() != 1 {
		t.Errorf("Progress = %d, expected 1", o.Progress())
	}
	if len(invalid) != 2 || invalid[1].Current != 1 {
		t.Errorf("InvalidInput = %+v", invalid)
	}
}

func TestTimerExpiryLoses(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	var ended []bool
	o.RoundEnded.Subscribe(func(won bool) { ended = append(ended, won) })

	for i := 0; i < 4; i++ {
		gate.Press("q")
	}
	o.Tick(4 * time.Second)
	if len(ended) != 0 {
		t.Fatal("round ended before timer expiry")
	}
	if got := o.RemainingTime(); got != time.Second {
		t.Errorf("RemainingTime() = %v, expected 1s", got)
	}

	// Expiry on the same frame as the winning tap: the tick runs first.
	o.Tick(time.Second)
	if gate.Press("q") {
		t.Error("press delivered after expiry")
	}
	if len(ended) != 1 || ended[0] {
		t.Errorf("RoundEnded = %v, expected [false]", ended)
	}
}

func TestZeroTickFreezesTimer(t *testing.T) {
	o, _ := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	before := o.RemainingTime()
	for i := 0; i < 100; i++ {
		o.Tick(0)
	}
	if o.RemainingTime() != before || !o.IsActive() {
		t.Errorf("zero ticks changed the round: remaining %v -> %v", before, o.RemainingTime())
	}
}

func TestEndRoundIdempotent(t *testing.T) {
	o, _ := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	count := 0
	o.RoundEnded.Subscribe(func(bool) { count++ })

	o.EndRound(true)
	o.EndRound(true)
	o.EndRound(false)
	if count != 1 {
		t.Errorf("RoundEnded emitted %d times, expected 1", count)
	}
}

func TestResetCurrentRoundIsSilent(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	emitted := false
	o.RoundEnded.Subscribe(func(bool) { emitted = true })

	o.ResetCurrentRound()
	if emitted {
		t.Error("ResetCurrentRound emitted RoundEnded")
	}
	if gate.Bound() || o.HasPrepared() || o.IsActive() {
		t.Error("ResetCurrentRound left the round live")
	}
}

func TestInputFilter(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	accept := false
	o.SetInputFilter(func() bool { return accept })
	gate.Press("q")
	if o.Progress() != 0 {
		t.Errorf("filtered press counted: progress %d", o.Progress())
	}
	accept = true
	gate.Press("q")
	if o.Progress() != 1 {
		t.Errorf("Progress() = %d, expected 1", o.Progress())
	}
}

func TestInputFilterLeavesMechanicUntouched(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale, def(mechanic.AlternateKeys, "q", "d"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	o.SetInputFilter(func() bool { return false })
	current := o.CurrentKey()
	gate.Press(current)
	if o.CurrentKey() != current {
		t.Errorf("filtered press advanced the mechanic: %v -> %v", current, o.CurrentKey())
	}
}

func TestNewOrchestratorRejectsOverrideOutsideScale(t *testing.T) {
	scale := Scale{BaseTaps: 30, MaxTaps: 60, BaseTime: 15 * time.Second, MinTime: 6 * time.Second}
	d := def(mechanic.SingleKey, "q")
	d.RequiredTaps = 100
	c, err := NewCatalog([]Definition{d})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if _, err := NewOrchestrator(input.NewGate(), c, scale); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewOrchestrator() error = %v, expected ErrConfiguration", err)
	}
}

func TestSplitPhaseFollowsProgress(t *testing.T) {
	scale := Scale{BaseTaps: 20, MaxTaps: 20, BaseTime: time.Minute, MinTime: time.Minute}
	o, gate := newTestOrchestrator(t, scale, def(mechanic.SplitKeys, "q", "d"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()

	first := o.CurrentKey()
	for i := 0; i < 10; i++ {
		gate.Press(o.CurrentKey())
	}
	if o.Progress() != 10 {
		t.Fatalf("Progress() = %d, expected 10", o.Progress())
	}
	if o.CurrentKey() == first {
		t.Errorf("current key still %q at half progress", first)
	}
	split, ok := o.Mechanic().(*mechanic.Split)
	if !ok || !split.SecondPhase() {
		t.Error("split mechanic not in second phase")
	}
}

func TestCorrectKeyRerollsOnTick(t *testing.T) {
	scale := Scale{BaseTaps: 50, MaxTaps: 50, BaseTime: time.Minute, MinTime: time.Minute}
	o, _ := newTestOrchestrator(t, scale, def(mechanic.CorrectKey, "a", "e", "t"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)

	changes := 0
	o.ActiveKeysChanged.Subscribe(func(ActiveKeys) { changes++ })
	o.StartPreparedRound()

	o.Tick(mechanic.RerollMax)
	if changes != 1 {
		t.Errorf("ActiveKeysChanged emitted %d times after a reroll interval, expected 1", changes)
	}
}

func TestScaledCopyLeavesCatalog(t *testing.T) {
	o, _ := newTestOrchestrator(t, flatScale, def(mechanic.SingleKey, "q"))
	o.ShuffleRounds()
	_ = o.PrepareRound(0)

	r, ok := o.CurrentRound()
	if !ok || r.RequiredTaps != 5 {
		t.Fatalf("CurrentRound() = %+v, %v", r, ok)
	}
	entry := o.catalog.Entries()[0]
	if entry.RequiredTaps != 0 || entry.Duration != 0 {
		t.Errorf("catalog entry mutated by scaling: %+v", entry)
	}
}

func TestJitterBounded(t *testing.T) {
	scale := flatScale
	scale.Jitter = 0.2
	o, _ := newTestOrchestrator(t, scale, def(mechanic.CorrectKey, "a", "e", "t"))
	o.ShuffleRounds()

	for i := 0; i < 20; i++ {
		_ = o.PrepareRound(0)
		r, _ := o.CurrentRound()
		if r.Duration < 8*time.Second || r.Duration > 12*time.Second {
			t.Errorf("jittered duration %v outside [8s, 12s]", r.Duration)
		}
	}
}

func TestPrepareTearsDownPrevious(t *testing.T) {
	o, gate := newTestOrchestrator(t, flatScale,
		def(mechanic.SingleKey, "q"),
		def(mechanic.SingleKey, "d"),
	)
	o.ShuffleRounds()
	_ = o.PrepareRound(0)
	o.StartPreparedRound()
	first := o.CurrentKey()

	_ = o.PrepareRound(1)
	if o.IsActive() || gate.Enabled() {
		t.Error("re-prepare left input enabled")
	}
	o.StartPreparedRound()
	if first == o.CurrentKey() {
		t.Fatalf("both rounds drew %q", first)
	}
	gate.Press(first)
	if o.Progress() != 0 {
		t.Errorf("press of previous key counted: progress %d", o.Progress())
	}
}
