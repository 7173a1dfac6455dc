package tui

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/input"
	"github.com/vovakirdan/keymash/internal/mechanic"
	"github.com/vovakirdan/keymash/internal/round"
	"github.com/vovakirdan/keymash/internal/session"
	"github.com/vovakirdan/keymash/internal/storage"
)

func newTestController(t *testing.T) *session.Controller {
	t.Helper()
	catalog, err := round.NewCatalog([]round.Definition{{
		Mechanic:       mechanic.SingleKey,
		Keys:           core.Keys("q"),
		TapMultiplier:  1,
		TimeMultiplier: 1,
	}})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	gate := input.NewGate()
	scale := round.Scale{BaseTaps: 3, MaxTaps: 3, BaseTime: 10 * time.Second, MinTime: 10 * time.Second}
	orch, err := round.NewOrchestrator(gate, catalog, scale, round.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	ctrl := session.NewController(gate, orch, config.CountdownConfig{})
	t.Cleanup(ctrl.Close)
	return ctrl
}

// step feeds msg and then one tick, returning the updated model.
func step(t *testing.T, m Model, msg tea.Msg, now time.Time) Model {
	t.Helper()
	if msg != nil {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	next, _ := m.Update(TickMsg(now))
	return next.(Model)
}

func TestModelPlaysAndRecordsSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ctrl := newTestController(t)
	m := NewModel(ctrl, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, Options{
		Store:      store,
		Difficulty: "normal",
	})
	defer m.Close()

	// The instant countdown finishes in the same frame as the start.
	now := time.Unix(1000, 0)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter}, now)
	if ctrl.State() != session.InGame {
		t.Fatalf("State() = %v after enter, expected InGame", ctrl.State())
	}
	view := m.View()
	if !strings.Contains(view, "ROUND 1/1") || !strings.Contains(view, "0/3") {
		t.Errorf("round view missing header or progress:\n%s", view)
	}

	for i := 0; i < 3; i++ {
		now = now.Add(16 * time.Millisecond)
		m = step(t, m, runeKey('q'), now)
	}
	if ctrl.State() != session.GameWon {
		t.Fatalf("State() = %v, expected GameWon", ctrl.State())
	}
	if !strings.Contains(m.View(), "YOU WIN!") {
		t.Error("result view missing win title")
	}

	runs, err := store.BestRuns(10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].TotalTaps != 3 || runs[0].Difficulty != "normal" {
		t.Errorf("recorded runs = %+v", runs)
	}
	if !m.hud.newBest || m.hud.best != 3 {
		t.Errorf("hud best = %d newBest = %v", m.hud.best, m.hud.newBest)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newTestController(t), core.RuntimeConfig{TickRate: 60}, Options{})
	defer m.Close()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !next.(Model).quitting {
		t.Error("ctrl+c did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model still renders")
	}
}
