package board

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
)

var (
	// ErrBoardTooSmall is returned when the grid has fewer than two interior cells.
	ErrBoardTooSmall = errors.New("board: grid too small")
	// ErrInvalidStart is returned when the configured start is not an interior cell.
	ErrInvalidStart = errors.New("board: start position outside interior")
)

// State is the lifecycle state of a board.
type State uint8

const (
	StateAlive  State = iota
	StateDead         // collision, terminal
	StateFilled       // the snake covers every interior cell, terminal
)

func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateDead:
		return "dead"
	case StateFilled:
		return "filled"
	default:
		return "unknown"
	}
}

// DeathCause tells what the head ran into.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseWall
	CauseSelf
)

func (c DeathCause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}

// Outcome describes what a single Step did.
type Outcome uint8

const (
	OutcomeIdle     Outcome = iota // board already terminal, nothing changed
	OutcomeMoved                   // head advanced, tail followed
	OutcomeGrew                    // fruit eaten, length +1
	OutcomeFilled                  // fruit eaten and no empty cell left
	OutcomeCollided                // wall or snake hit, board is dead
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeMoved:
		return "moved"
	case OutcomeGrew:
		return "grew"
	case OutcomeFilled:
		return "filled"
	case OutcomeCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// Continue reports whether the session may keep stepping after this outcome.
func (o Outcome) Continue() bool {
	return o == OutcomeMoved || o == OutcomeGrew
}

// Config describes the board to build.
// A zero Start places the snake at the center of the grid.
type Config struct {
	Rows    int
	Cols    int
	Start   Position
	Heading Heading
}

// Board owns the grid and the snake and advances them one step per tick.
type Board struct {
	grid    *Grid
	rng     RandSource
	body    *deque.Deque[Position] // head at the front
	heading Heading
	fruit   Position
	hasFood bool
	state   State
	cause   DeathCause
	steps   int
}

// New builds a board with a length-1 snake and one fruit.
func New(cfg Config, rng RandSource) (*Board, error) {
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, cfg.Rows, cfg.Cols)
	}

	g := NewGrid(cfg.Rows, cfg.Cols)
	if g.Interior() < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, cfg.Rows, cfg.Cols)
	}
	start := cfg.Start
	if start == (Position{}) {
		start = Position{Row: cfg.Rows / 2, Col: cfg.Cols / 2}
	}
	if !g.InBounds(start) || g.IsBorder(start) {
		return nil, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrInvalidStart, start.Row, start.Col, cfg.Rows, cfg.Cols)
	}

	b := &Board{
		grid:    g,
		rng:     rng,
		body:    deque.New[Position](),
		heading: cfg.Heading,
	}
	b.body.PushFront(start)
	g.SetCell(start, CellSnake)
	b.placeFruit()
	return b, nil
}

// placeFruit drops a new fruit, switching to StateFilled when none fits.
func (b *Board) placeFruit() {
	p, err := PlaceFruit(b.grid, b.rng)
	if err != nil {
		b.hasFood = false
		b.state = StateFilled
		return
	}
	b.fruit = p
	b.hasFood = true
}

// SetHeading requests a new heading for the next step. The exact reverse of
// the current heading is ignored. Returns whether the request was accepted.
func (b *Board) SetHeading(h Heading) bool {
	if h == b.heading.Opposite() {
		return false
	}
	b.heading = h
	return true
}

// Step advances the simulation by one move.
func (b *Board) Step() Outcome {
	if b.state != StateAlive {
		return OutcomeIdle
	}

	next := b.Head().Add(b.heading.Delta())
	target := b.grid.CellAt(next)
	if target.Blocking() {
		if target == CellWall {
			b.die(CauseWall)
		} else {
			b.die(CauseSelf)
		}
		return OutcomeCollided
	}

	switch target {
	case CellFruit:
		b.body.PushFront(next)
		b.grid.SetCell(next, CellSnake)
		b.steps++
		b.placeFruit()
		if b.state == StateFilled {
			return OutcomeFilled
		}
		return OutcomeGrew
	default:
		b.body.PushFront(next)
		b.grid.SetCell(next, CellSnake)
		tail := b.body.PopBack()
		b.grid.SetCell(tail, CellEmpty)
		b.steps++
		return OutcomeMoved
	}
}

func (b *Board) die(cause DeathCause) {
	b.state = StateDead
	b.cause = cause
}

// Grid exposes the underlying grid for read access.
func (b *Board) Grid() *Grid {
	return b.grid
}

// CellAt returns the tag of the cell at p.
func (b *Board) CellAt(p Position) Cell {
	return b.grid.CellAt(p)
}

// Head returns the head position.
func (b *Board) Head() Position {
	return b.body.Front()
}

// Heading returns the current heading.
func (b *Board) Heading() Heading {
	return b.heading
}

// Len returns the snake length.
func (b *Board) Len() int {
	return b.body.Len()
}

// Body returns the snake positions, head first.
func (b *Board) Body() []Position {
	out := make([]Position, b.body.Len())
	for i := range out {
		out[i] = b.body.At(i)
	}
	return out
}

// Fruit returns the live fruit position; ok is false once the board is full.
func (b *Board) Fruit() (pos Position, ok bool) {
	return b.fruit, b.hasFood
}

// State returns the lifecycle state.
func (b *Board) State() State {
	return b.state
}

// Cause returns why the board died, or CauseNone.
func (b *Board) Cause() DeathCause {
	return b.cause
}

// Steps returns how many successful moves have been made.
func (b *Board) Steps() int {
	return b.steps
}

// Continue reports whether the board still accepts steps.
func (b *Board) Continue() bool {
	return b.state == StateAlive
}
