package core

// Game is what the platform drives: a fixed-rate Step, a Render into a
// screen buffer and a State query. Implementations hold no terminal state.
type Game interface {
	// ID returns a stable identifier used for recordings and screenshots.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new session with the given screen size and seed.
	Reset(cfg RuntimeConfig)

	// Step advances one frame using the actions collected since the last frame.
	Step(in InputFrame) StepResult

	// Render draws the current state into dst.
	Render(dst *Screen)

	// State returns the current status.
	State() GameState
}
