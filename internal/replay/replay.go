// Package replay records the inputs of a session and plays them back.
//
// A session is fully determined by its seed, its board dimensions and the
// ordered list of accepted heading changes, each tagged with the number of
// moves the board had made when it arrived.
package replay

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/board"
)

// Turn is one accepted heading change.
type Turn struct {
	Step    int // board.Steps() when the turn was accepted
	Heading board.Heading
}

// Recording is everything needed to reproduce a session.
type Recording struct {
	ID        int64
	Seed      int64
	Rows      int
	Cols      int
	Heading   board.Heading // initial heading
	Turns     []Turn
	Steps     int
	Outcome   string // final board state, e.g. "dead:wall"
	CreatedAt time.Time
}

// Config returns the board configuration the recording was made with.
func (r *Recording) Config() board.Config {
	return board.Config{Rows: r.Rows, Cols: r.Cols, Heading: r.Heading}
}

// NewBoard rebuilds the starting board of the recording.
func (r *Recording) NewBoard() (*board.Board, error) {
	return board.New(r.Config(), rand.New(rand.NewSource(r.Seed)))
}

// Recorder collects turns while a session is played.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a board built from seed and cfg.
func NewRecorder(seed int64, cfg board.Config) *Recorder {
	return &Recorder{rec: Recording{
		Seed:    seed,
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Heading: cfg.Heading,
	}}
}

// Turn logs a heading change accepted at the given step.
func (r *Recorder) Turn(step int, h board.Heading) {
	r.rec.Turns = append(r.rec.Turns, Turn{Step: step, Heading: h})
}

// Finish stamps the final state of b and returns the recording.
func (r *Recorder) Finish(b *board.Board) *Recording {
	rec := r.rec
	rec.Turns = append([]Turn(nil), r.rec.Turns...)
	rec.Steps = b.Steps()
	rec.Outcome = OutcomeOf(b)
	rec.CreatedAt = time.Now()
	return &rec
}

// OutcomeOf formats the terminal state of a board.
func OutcomeOf(b *board.Board) string {
	if b.State() == board.StateDead {
		return fmt.Sprintf("%s:%s", b.State(), b.Cause())
	}
	return b.State().String()
}

// Script feeds recorded turns back into a board.
type Script struct {
	turns []Turn
	next  int
}

// NewScript creates a script positioned at the first turn.
func NewScript(rec *Recording) *Script {
	return &Script{turns: rec.Turns}
}

// Apply sets every turn recorded for the board's current step, in order.
// It returns how many turns were applied.
func (s *Script) Apply(b *board.Board) int {
	applied := 0
	for s.next < len(s.turns) && s.turns[s.next].Step <= b.Steps() {
		b.SetHeading(s.turns[s.next].Heading)
		s.next++
		applied++
	}
	return applied
}

// Rewind moves the script back to the first turn.
func (s *Script) Rewind() {
	s.next = 0
}

// Done reports whether all turns have been applied.
func (s *Script) Done() bool {
	return s.next >= len(s.turns)
}

// Run replays a recording headlessly and returns the final board.
func Run(rec *Recording) (*board.Board, error) {
	b, err := rec.NewBoard()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	script := NewScript(rec)
	for b.Continue() {
		script.Apply(b)
		b.Step()
	}
	return b, nil
}
