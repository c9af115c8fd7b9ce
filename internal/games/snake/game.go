// Package snake adapts a board.Board to the platform's frame-driven core.Game.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

const hudHeight = 1

// Glyphs per cell tag.
const (
	glyphEmpty = '·'
	glyphWall  = '█'
	glyphFruit = '●'
	glyphSnake = '█'
)

// Game implements core.Game for a single snake session.
type Game struct {
	cfg  config.SnakeConfig
	diff *config.DifficultyManager

	rng   *rand.Rand // draws restart seeds
	seed  int64
	board *board.Board

	recorder *replay.Recorder
	source   *replay.Recording // set in replay mode
	script   *replay.Script

	tick       uint64
	moveTicker int
	moveEvery  int

	screenW  int
	screenH  int
	originX  int
	originY  int
	paused   bool
	tooSmall bool
}

// New creates a live game.
func New(cfg config.SnakeConfig) *Game {
	return &Game{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// NewReplay creates a game that plays back rec and ignores steering input.
func NewReplay(cfg config.SnakeConfig, rec *replay.Recording) *Game {
	g := New(cfg)
	g.source = rec
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.source != nil {
		return fmt.Sprintf("Snake (replay #%d)", g.source.ID)
	}
	return "Snake"
}

// Reset builds a fresh board for the given screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tick = 0
	g.moveTicker = 0
	g.paused = false
	g.tooSmall = false
	g.board = nil
	g.recorder = nil

	g.seed = rc.Seed
	bc := g.boardConfig()
	if g.source != nil {
		g.seed = g.source.Seed
		bc = g.source.Config()
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	cw, ch := g.cfg.Board.CellWidth, g.cfg.Board.CellHeight
	if bc.Cols*cw > g.screenW || bc.Rows*ch > g.screenH-hudHeight {
		g.tooSmall = true
		return
	}

	b, err := board.New(bc, rand.New(rand.NewSource(g.seed)))
	if err != nil {
		g.tooSmall = true
		return
	}
	g.board = b
	g.center()

	if g.source != nil {
		if g.script == nil {
			g.script = replay.NewScript(g.source)
		} else {
			g.script.Rewind()
		}
	} else {
		g.recorder = replay.NewRecorder(g.seed, bc)
	}
	g.moveEvery = g.currentMoveEvery()
}

// Resize records a new screen size without touching the session. A finished
// session keeps its board on screen and picks the size up on restart.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.board != nil {
		g.center()
	}
}

func (g *Game) center() {
	grid := g.board.Grid()
	g.originX = (g.screenW - grid.Cols()*g.cfg.Board.CellWidth) / 2
	g.originY = hudHeight + (g.screenH-hudHeight-grid.Rows()*g.cfg.Board.CellHeight)/2
}

// boardConfig sizes the board from config, or from the screen when rows or
// cols are left at zero.
func (g *Game) boardConfig() board.Config {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols
	if cols <= 0 {
		cols = g.screenW / g.cfg.Board.CellWidth
	}
	if rows <= 0 {
		rows = (g.screenH - hudHeight) / g.cfg.Board.CellHeight
	}
	return board.Config{Rows: rows, Cols: cols, Heading: board.Right}
}

func (g *Game) currentMoveEvery() int {
	return g.diff.MoveEvery(g.cfg.Speed, g.board.Len()-1, g.tick)
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.ended() {
		seed := g.rng.Int63()
		g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.ended() {
		g.paused = !g.paused
	}

	if g.tooSmall || g.paused || !g.board.Continue() {
		return core.StepResult{State: g.State()}
	}

	if g.script == nil {
		for _, a := range input.Directions {
			h, ok := headingFor(a)
			if ok && g.board.SetHeading(h) {
				g.recorder.Turn(g.board.Steps(), h)
			}
		}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEvery {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	if g.script != nil {
		g.script.Apply(g.board)
	}
	out := g.board.Step()
	g.moveEvery = g.currentMoveEvery()

	return core.StepResult{State: g.State(), Moved: out != board.OutcomeIdle && out != board.OutcomeCollided}
}

// ended reports whether the session is over and only restart is possible.
func (g *Game) ended() bool {
	return g.board != nil && !g.board.Continue()
}

func headingFor(a core.Action) (board.Heading, bool) {
	switch a {
	case core.ActionUp:
		return board.Up, true
	case core.ActionDown:
		return board.Down, true
	case core.ActionLeft:
		return board.Left, true
	case core.ActionRight:
		return board.Right, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.board.Len() - 1,
		GameOver: !g.board.Continue(),
		Won:      g.board.State() == board.StateFilled,
		Paused:   g.paused,
	}
}

// Recording returns the finished session, or nil while it is still running
// or when the game is itself a replay.
func (g *Game) Recording() *replay.Recording {
	if g.recorder == nil || !g.ended() {
		return nil
	}
	return g.recorder.Finish(g.board)
}
