package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/events"
	"github.com/vovakirdan/keymash/internal/round"
	"github.com/vovakirdan/keymash/internal/session"
	"github.com/vovakirdan/keymash/internal/storage"
)

// feedbackFrames is how long the valid/invalid flash stays on screen.
const feedbackFrames = 8

// Options holds the model's optional collaborators.
type Options struct {
	Store      *storage.Store // nil disables the scoreboard
	Difficulty string         // recorded with each result
	Logger     *log.Logger
}

// hud is the state the controller's signals write into. The Bubble Tea
// model is copied on every update, so it holds this by pointer.
type hud struct {
	store      *storage.Store
	difficulty string
	logger     *log.Logger

	result  *session.Result
	best    int
	newBest bool
	valid   bool
	flash   int
	err     error
}

// Model is the Bubble Tea model that plays one keymash session at a time.
type Model struct {
	ctrl       *session.Controller
	config     core.RuntimeConfig
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	progress   progress.Model
	theme      Theme
	inputFrame core.InputFrame
	lastTick   time.Time
	hud        *hud
	subs       *events.Unsubscribers
	quitting   bool
}

// NewModel creates a model driving ctrl. Call Close when done to drop the
// signal subscriptions.
func NewModel(ctrl *session.Controller, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()

	h := &hud{
		store:      opts.Store,
		difficulty: opts.Difficulty,
		logger:     opts.Logger,
	}
	if h.store != nil {
		if best, err := h.store.BestTaps(); err == nil {
			h.best = best
		}
	}

	subs := &events.Unsubscribers{}
	orch := ctrl.Orchestrator()
	subs.Add(orch.ValidInput.Subscribe(func(round.Progress) { h.feedback(true) }))
	subs.Add(orch.InvalidInput.Subscribe(func(round.Progress) { h.feedback(false) }))
	subs.Add(ctrl.GameEnded.Subscribe(h.record))
	subs.Add(ctrl.GameStateChanged.Subscribe(func(s session.State) {
		if s == session.RoundTransition {
			h.result = nil
			h.newBest = false
			h.flash = 0
		}
	}))

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = progressWidth(cfg.ScreenW)

	return Model{
		ctrl:       ctrl,
		config:     cfg,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
		progress:   bar,
		theme:      DefaultTheme(),
		inputFrame: core.NewInputFrame(),
		hud:        h,
		subs:       subs,
	}
}

// Close releases the model's signal subscriptions.
func (m Model) Close() {
	m.subs.Release()
}

func (h *hud) feedback(valid bool) {
	h.valid = valid
	h.flash = feedbackFrames
}

// record stores a finished session. Saving is best-effort; the game
// continues regardless.
func (h *hud) record(res session.Result) {
	h.result = &res
	if h.store == nil {
		return
	}

	prevBest := h.best
	_, err := h.store.SaveResult(storage.Result{
		Won:           res.Won,
		TotalTaps:     res.TotalTaps,
		RoundsCleared: res.RoundsCleared,
		TotalRounds:   res.TotalRounds,
		Difficulty:    h.difficulty,
	})
	if err != nil {
		h.logger.Warn("could not save result", "error", err)
		return
	}
	h.newBest = res.Won && (prevBest == 0 || res.TotalTaps < prevBest)
	if best, err := h.store.BestTaps(); err == nil {
		h.best = best
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.progress.Width = progressWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey collects keyboard input into the pending frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one controller frame with the collected input.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	if err := m.ctrl.Update(dt, m.inputFrame); err != nil {
		m.hud.err = err
		m.hud.logger.Error("session aborted", "error", err)
	} else if m.ctrl.State() == session.RoundTransition {
		m.hud.err = nil
	}
	if m.hud.flash > 0 {
		m.hud.flash--
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func progressWidth(screenW int) int {
	return core.Clamp(screenW-20, 10, 60)
}

// Run starts the Bubble Tea program with the given controller.
func Run(ctrl *session.Controller, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(ctrl, cfg, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
