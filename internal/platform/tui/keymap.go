package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/keymash/internal/core"
)

// KeyMap defines the control bindings. Every other printable key is a
// gameplay key.
type KeyMap struct {
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Pause},
		{k.Restart, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/ready"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause"),
		),
		// r is also a gameplay key; restart only applies on the result screen.
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages into input frames.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper over the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKeyToFrame records the message's action and gameplay key in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return true
	case key.Matches(msg, km.keys.Confirm):
		frame.Set(core.ActionConfirm)
		return false
	case key.Matches(msg, km.keys.Pause):
		frame.Set(core.ActionPause)
		return false
	case key.Matches(msg, km.keys.Back):
		frame.Set(core.ActionBack)
		return false
	case key.Matches(msg, km.keys.Restart):
		frame.Set(core.ActionRestart)
	}

	if k := GameplayKey(msg); k != core.KeyNone {
		frame.Press(k)
	}
	return false
}

// GameplayKey returns the key name a message carries, or KeyNone for
// control and multi-rune input. Letters are lower-cased and the space bar
// is named "space".
func GameplayKey(msg tea.KeyMsg) core.Key {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 || msg.Paste {
			return core.KeyNone
		}
		r := msg.Runes[0]
		if r == ' ' {
			return "space"
		}
		if !unicode.IsPrint(r) {
			return core.KeyNone
		}
		return core.Key(strings.ToLower(string(r)))
	}
	return core.KeyNone
}
