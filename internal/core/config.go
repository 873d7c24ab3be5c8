package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
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

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Lives    int    // Remaining lives
	Level    string // Level identifier
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the run is paused
	Exited   bool   // Whether the player pressed back
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
