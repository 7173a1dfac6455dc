// Package session drives a play-through: it sequences rounds, runs the
// between-round countdown, pauses, and tracks total taps.
package session

// State is the session's top-level state.
type State int

const (
	WaitingForStart State = iota
	RoundTransition
	InGame
	GameWon
	GameOver
)

func (s State) String() string {
	switch s {
	case WaitingForStart:
		return "WaitingForStart"
	case RoundTransition:
		return "RoundTransition"
	case InGame:
		return "InGame"
	case GameWon:
		return "GameWon"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Ended reports whether s is a terminal state.
func (s State) Ended() bool {
	return s == GameWon || s == GameOver
}

// Phase is the countdown sub-state inside RoundTransition.
type Phase int

const (
	PhaseNone Phase = iota
	AwaitingConfirmation
	CountdownRunning
)

func (p Phase) String() string {
	switch p {
	case AwaitingConfirmation:
		return "AwaitingConfirmation"
	case CountdownRunning:
		return "CountdownRunning"
	default:
		return "None"
	}
}
