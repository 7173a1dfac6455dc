package core

// Key identifies a single keyboard key as reported by the terminal
// (e.g. "q", "d", "space"). Keys are compared by value.
type Key string

// KeyNone is the zero key, used when nothing was pressed this frame.
const KeyNone Key = ""

// String returns the key's display label.
func (k Key) String() string {
	if k == KeyNone {
		return "None"
	}
	return string(k)
}

// Keys converts a list of raw key names into Keys.
func Keys(names ...string) []Key {
	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = Key(n)
	}
	return keys
}

// Action represents a session-level control intent, abstracted from the
// physical key that triggered it. Gameplay keys are carried separately.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - confirm round start, start game from menu
	ActionPause          // Esc - pause/unpause while in game
	ActionRestart        // R on the end screen - retry
	ActionBack           // M on the end screen - return to main menu
	ActionQuit           // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one simulation tick:
// any control actions plus at most one newly pressed gameplay key.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Key is the first gameplay key pressed this frame, or KeyNone.
	// Later presses in the same frame are dropped (no combos).
	Key Key
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press records a gameplay key. Returns false if a key was already
// recorded this frame, in which case the press is ignored.
func (f *InputFrame) Press(k Key) bool {
	if k == KeyNone || f.Key != KeyNone {
		return false
	}
	f.Key = k
	return true
}

// Clear resets all actions and the pressed key for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Key = KeyNone
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Key = f.Key
	return clone
}
