package core

// RuntimeConfig is passed to a game when it is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform after each frame.
type GameState struct {
	Score    int  // Fruit eaten this session
	GameOver bool // Session ended (collision or full board)
	Won      bool // Session ended because the board is full
	Paused   bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	Moved bool // Whether the simulation advanced during this frame
}
