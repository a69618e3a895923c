// Package game tracks one play session over a generated board: the reveal
// mask, the cascade over empty regions, and the win/loss state machine.
package game

// State represents where a session stands.
type State int

const (
	// StatePlaying accepts moves.
	StatePlaying State = iota
	// StateLost is reached by revealing a hazard. Absorbing.
	StateLost
	// StateWon is reached when only hazards remain unrevealed. Absorbing.
	StateWon
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal returns true for states that accept no further moves.
func (s State) Terminal() bool {
	return s == StateLost || s == StateWon
}
