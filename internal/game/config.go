package game

import "github.com/samdwyer/minesofdoom/internal/board"

// Config holds the parameters of a new session.
type Config struct {
	Width   int
	Height  int
	Hazards int // Clamped by the board, never rejected

	// Seed for random number generation. Used for reproducible boards.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Placement board.Placement
}
