package core

import "time"

// DefaultTickInterval is the fixed wall-clock time between two simulation ticks.
const DefaultTickInterval = 500 * time.Millisecond

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Time between simulation ticks
	Seed         int64         // RNG seed for deterministic gameplay

	// Rules overrides the game variant's default rules when set.
	Rules *Rules
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// Interval returns the tick interval, falling back to the default when unset.
func (c RuntimeConfig) Interval() time.Duration {
	if c.TickInterval <= 0 {
		return DefaultTickInterval
	}
	return c.TickInterval
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Locked   int  // Pieces locked into the board this game
	Ticks    int  // Ticks simulated this game
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Quit is set when the consumed action asked to leave the game.
	// The platform stops ticking immediately.
	Quit bool

	// Restarted is set when the tick started a fresh game.
	Restarted bool
}

// Rules selects the optional commands and restart behavior of a game variant.
type Rules struct {
	Rotate             bool // w rotates the active piece
	HardDrop           bool // space drops and locks the active piece
	RestartClearsPause bool // restart also resumes a paused game
}
