package snake

import "github.com/vovakirdan/tui-snake/internal/board"

// Phase is the presentation state of the game.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseWin      Phase = "win"
	PhaseTooSmall Phase = "too_small"
)

// Snapshot captures the game state for determinism testing and replay checks.
type Snapshot struct {
	Tick      uint64
	Seed      int64
	MoveEvery int
	Replay    bool
	Phase     Phase
	Board     board.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Seed:      g.seed,
		MoveEvery: g.moveEvery,
		Replay:    g.source != nil,
		Phase:     PhasePlaying,
	}
	if g.board == nil {
		s.Phase = PhaseTooSmall
		return s
	}
	s.Board = g.board.Snapshot()

	switch {
	case s.Board.State == board.StateFilled:
		s.Phase = PhaseWin
	case s.Board.State == board.StateDead:
		s.Phase = PhaseGameOver
	case g.paused:
		s.Phase = PhasePaused
	}
	return s
}
