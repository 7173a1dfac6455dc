package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/keymash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		key    core.Key
		quit   bool
	}{
		{"letter", runeKey('q'), core.ActionNone, "q", false},
		{"upper case", runeKey('D'), core.ActionNone, "d", false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionNone, "space", false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, core.KeyNone, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, core.KeyNone, false},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionBack, core.KeyNone, false},
		{"r restarts and plays", runeKey('r'), core.ActionRestart, "r", false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionNone, core.KeyNone, true},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone, core.KeyNone, false},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, core.ActionNone, core.KeyNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := km.MapKeyToFrame(tc.msg, &frame)
			if quit != tc.quit {
				t.Errorf("quit = %v, expected %v", quit, tc.quit)
			}
			if tc.action != core.ActionNone && !frame.Has(tc.action) {
				t.Errorf("frame missing action %v", tc.action)
			}
			if frame.Key != tc.key {
				t.Errorf("frame key = %q, expected %q", frame.Key, tc.key)
			}
		})
	}
}

func TestMapKeyFirstKeyWins(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey('a'), &frame)
	km.MapKeyToFrame(runeKey('e'), &frame)
	if frame.Key != "a" {
		t.Errorf("frame key = %q, expected first press %q", frame.Key, "a")
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want time.Duration
	}{
		{"first tick", time.Time{}, base, 0},
		{"normal", base, base.Add(16 * time.Millisecond), 16 * time.Millisecond},
		{"stall", base, base.Add(5 * time.Second), maxFrameDelta},
		{"backwards", base, base.Add(-time.Second), 0},
	}
	for _, tc := range tests {
		if got := frameDelta(tc.prev, tc.now); got != tc.want {
			t.Errorf("%s: frameDelta = %v, expected %v", tc.name, got, tc.want)
		}
	}
}
