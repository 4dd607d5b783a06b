package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDuration returns the wall-clock length of one host frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Values of GameState.EndReason.
const (
	EndReasonToppedOut = "topped_out" // the stack reached the game-over row
	EndReasonBlocked   = "blocked"    // a new block spawned onto locked cells
	EndReasonEnded     = "ended"      // the match was stopped before it was over
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Locked    int    // Blocks locked into the grid this match
	Ticks     uint64 // Fall ticks processed this match
	GameOver  bool   // Whether the match has ended
	Paused    bool   // Whether the game is paused
	MatchID   string // Identifier of the current match
	EndReason string // Why the match ended, empty while running
}

// StepResult is returned by Game.Step() after each host frame.
type StepResult struct {
	State GameState

	// GameOverSignal is true on exactly one step per match: the step
	// on which the match ended.
	GameOverSignal bool
}
