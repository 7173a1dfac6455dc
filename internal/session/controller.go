package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/events"
	"github.com/vovakirdan/keymash/internal/input"
	"github.com/vovakirdan/keymash/internal/round"
)

// MaxTotalTaps is where the session tap counter saturates.
const MaxTotalTaps = 999

// Result summarizes a finished session.
type Result struct {
	Won           bool
	TotalTaps     int
	RoundsCleared int
	TotalRounds   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller is the session state machine. It owns the countdown and the
// pause clock and sequences the orchestrator's rounds.
type Controller struct {
	gate      *input.Gate
	orch      *round.Orchestrator
	clock     *Clock
	countdown *Countdown
	logger    *log.Logger
	subs      events.Unsubscribers

	state         State
	paused        bool
	roundIndex    int
	roundsCleared int
	totalTaps     int
	err           error

	TotalTapsChanged events.Signal[int]
	RoundChanged     events.Signal[int] // 1-based round number
	GameStateChanged events.Signal[State]
	GamePaused       events.Signal[bool]
	GameEnded        events.Signal[Result]
	CountdownChanged events.Signal[int]
}

// NewController wires a controller to the gate and orchestrator it drives.
// Call Close to drop its subscriptions.
func NewController(gate *input.Gate, orch *round.Orchestrator, countdown config.CountdownConfig, opts ...Option) *Controller {
	c := &Controller{
		gate:      gate,
		orch:      orch,
		clock:     NewClock(),
		countdown: NewCountdown(countdown),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	orch.SetInputFilter(c.acceptingInput)
	c.subs.Add(orch.ValidInput.Subscribe(func(round.Progress) { c.countTap() }))
	c.subs.Add(orch.InvalidInput.Subscribe(func(round.Progress) { c.countTap() }))
	c.subs.Add(orch.RoundEnded.Subscribe(c.onRoundEnded))
	return c
}

// Close releases the orchestrator subscriptions.
func (c *Controller) Close() {
	c.subs.Release()
	c.orch.SetInputFilter(nil)
}

// StartGame begins a session from WaitingForStart.
func (c *Controller) StartGame() error {
	if c.state != WaitingForStart {
		return nil
	}
	return c.begin()
}

// RetryGame begins a fresh session from a finished one.
func (c *Controller) RetryGame() error {
	if c.state != WaitingForStart && !c.state.Ended() {
		return nil
	}
	return c.begin()
}

func (c *Controller) begin() error {
	c.orch.ResetCurrentRound()
	c.countdown.Cancel()
	c.setPaused(false)
	c.roundIndex = 0
	c.roundsCleared = 0
	c.setTotalTaps(0)
	c.err = nil

	c.orch.ShuffleRounds()
	if err := c.prepare(0); err != nil {
		c.abort(0, err)
		c.err = nil
		return err
	}
	c.logger.Info("session started", "rounds", c.orch.TotalRounds())
	return nil
}

// Confirm releases the countdown from AwaitingConfirmation.
func (c *Controller) Confirm() {
	if c.state != RoundTransition {
		return
	}
	if c.countdown.Confirm() {
		c.CountdownChanged.Emit(c.countdown.Beat())
	}
}

// CountdownFinished starts the prepared round. The built-in countdown calls
// it; a front-end running its own countdown may call it directly.
func (c *Controller) CountdownFinished() {
	if c.state != RoundTransition || !c.orch.HasPrepared() {
		return
	}
	c.countdown.Cancel()
	c.setState(InGame)
	c.orch.StartPreparedRound()
}

// TogglePause flips pause while InGame and is a no-op otherwise.
func (c *Controller) TogglePause() {
	if c.state != InGame {
		return
	}
	c.setPaused(!c.paused)
}

// ReturnToMainMenu abandons the session from any state.
func (c *Controller) ReturnToMainMenu() {
	c.orch.ResetCurrentRound()
	c.countdown.Cancel()
	c.setPaused(false)
	c.setState(WaitingForStart)
}

// Update runs one frame. Control actions apply first, then the tick, then
// the frame's gameplay key. It returns an error when advancing to the next
// round failed; the session is then back in WaitingForStart.
func (c *Controller) Update(dt time.Duration, frame core.InputFrame) error {
	if err := c.applyActions(frame); err != nil {
		return err
	}

	switch c.state {
	case RoundTransition:
		changed, done := c.countdown.Advance(dt)
		if changed {
			c.CountdownChanged.Emit(c.countdown.Beat())
		}
		if done {
			c.CountdownFinished()
		}
	case InGame:
		c.orch.Tick(c.clock.Scaled(dt))
	}

	if frame.Key != core.KeyNone && c.acceptingInput() {
		c.gate.Press(frame.Key)
	}

	err := c.err
	c.err = nil
	return err
}

func (c *Controller) applyActions(frame core.InputFrame) error {
	if frame.Has(core.ActionBack) && c.state != WaitingForStart {
		c.ReturnToMainMenu()
		return nil
	}
	if frame.Has(core.ActionPause) {
		c.TogglePause()
	}
	if frame.Has(core.ActionConfirm) {
		switch c.state {
		case WaitingForStart:
			return c.StartGame()
		case RoundTransition:
			c.Confirm()
		}
	}
	if frame.Has(core.ActionRestart) && c.state.Ended() {
		return c.RetryGame()
	}
	return nil
}

func (c *Controller) onRoundEnded(won bool) {
	if c.state != InGame {
		return
	}
	if !won {
		c.endGame(false)
		return
	}
	c.roundsCleared++
	next := c.roundIndex + 1
	if next >= c.orch.TotalRounds() {
		c.endGame(true)
		return
	}
	if err := c.prepare(next); err != nil {
		c.abort(next, err)
	}
}

// prepare readies the round at index and enters RoundTransition.
func (c *Controller) prepare(index int) error {
	if err := c.orch.PrepareRound(index); err != nil {
		return err
	}
	c.roundIndex = index
	c.RoundChanged.Emit(index + 1)

	c.setPaused(false)
	c.setState(RoundTransition)
	if c.countdown.Begin() {
		c.CountdownChanged.Emit(c.countdown.Beat())
	}
	return nil
}

// endGame finishes the session. The round is already over, so it resets
// rather than ending it again.
func (c *Controller) endGame(won bool) {
	c.orch.ResetCurrentRound()
	c.setPaused(false)
	if won {
		c.setState(GameWon)
	} else {
		c.setState(GameOver)
	}
	res := Result{
		Won:           won,
		TotalTaps:     c.totalTaps,
		RoundsCleared: c.roundsCleared,
		TotalRounds:   c.orch.TotalRounds(),
	}
	c.logger.Info("session ended", "won", won, "taps", res.TotalTaps, "cleared", res.RoundsCleared)
	c.GameEnded.Emit(res)
}

func (c *Controller) abort(index int, err error) {
	c.logger.Error("session aborted", "round", index+1, "error", err)
	c.ReturnToMainMenu()
	c.err = err
}

func (c *Controller) acceptingInput() bool {
	return c.state == InGame && !c.paused
}

func (c *Controller) countTap() {
	if c.totalTaps >= MaxTotalTaps {
		return
	}
	c.setTotalTaps(c.totalTaps + 1)
}

func (c *Controller) setTotalTaps(n int) {
	if n == c.totalTaps {
		return
	}
	c.totalTaps = n
	c.TotalTapsChanged.Emit(n)
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.logger.Debug("state", "from", c.state, "to", s)
	c.state = s
	c.GameStateChanged.Emit(s)
}

func (c *Controller) setPaused(p bool) {
	if p == c.paused {
		return
	}
	c.paused = p
	if p {
		c.clock.SetScale(0)
		c.gate.Enable(false)
	} else {
		c.clock.SetScale(1)
		c.gate.Enable(c.orch.IsActive())
	}
	c.GamePaused.Emit(p)
}

// State returns the session state.
func (c *Controller) State() State { return c.state }

// Phase returns the countdown sub-state.
func (c *Controller) Phase() Phase { return c.countdown.Phase() }

// CountdownBeat returns the beat on display during RoundTransition.
func (c *Controller) CountdownBeat() int { return c.countdown.Beat() }

// RoundNumber returns the 1-based number of the current round.
func (c *Controller) RoundNumber() int { return c.roundIndex + 1 }

// TotalRounds returns the number of rounds per session.
func (c *Controller) TotalRounds() int { return c.orch.TotalRounds() }

// TotalTaps returns the session tap counter.
func (c *Controller) TotalTaps() int { return c.totalTaps }

// IsPaused reports whether gameplay time is frozen.
func (c *Controller) IsPaused() bool { return c.paused }

// Clock returns the gameplay clock.
func (c *Controller) Clock() *Clock { return c.clock }

// Orchestrator returns the orchestrator the controller drives.
func (c *Controller) Orchestrator() *round.Orchestrator { return c.orch }
