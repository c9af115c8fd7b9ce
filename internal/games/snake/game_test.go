package snake

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// fastConfig moves the snake on every frame.
func fastConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Speed.MoveEveryTicks = 1
	cfg.Speed.MinMoveEveryTicks = 1
	return cfg
}

func newGame(t *testing.T, cfg config.SnakeConfig, seed int64) *Game {
	t.Helper()
	g := New(cfg)
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	if g.board == nil {
		t.Fatal("board should fit an 80x24 screen")
	}
	return g
}

// runUntilOver steps with random steering until the session ends.
func runUntilOver(t *testing.T, g *Game, steer *rand.Rand) {
	t.Helper()
	input := core.NewInputFrame()
	for range 100000 {
		input.Clear()
		if steer != nil && steer.Intn(4) == 0 {
			input.Set(core.Action(int(core.ActionUp) + steer.Intn(4)))
		}
		if g.Step(input).State.GameOver {
			return
		}
	}
	t.Fatal("session did not end")
}

func TestBoardSizedFromScreen(t *testing.T) {
	g := newGame(t, config.DefaultSnakeConfig(), 1)
	snap := g.Snapshot()

	// Cells are 2x1 characters; one row is taken by the HUD.
	if snap.Board.Rows != 23 || snap.Board.Cols != 40 {
		t.Errorf("board = %dx%d, expected 23x40", snap.Board.Rows, snap.Board.Cols)
	}
	if snap.Board.Head != (board.Position{Row: 11, Col: 20}) {
		t.Errorf("head = %v, expected center (11,20)", snap.Board.Head)
	}
	if snap.Phase != PhasePlaying {
		t.Errorf("phase = %s, expected playing", snap.Phase)
	}
}

func TestFixedBoardDimensions(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.Rows = 10
	cfg.Board.Cols = 12

	g := newGame(t, cfg, 1)
	snap := g.Snapshot()
	if snap.Board.Rows != 10 || snap.Board.Cols != 12 {
		t.Errorf("board = %dx%d, expected 10x12", snap.Board.Rows, snap.Board.Cols)
	}
	if g.originX != (80-24)/2 {
		t.Errorf("originX = %d, expected the board centered", g.originX)
	}
}

func TestTooSmall(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() config.SnakeConfig
		w, h int
	}{
		{"derived board below minimum", config.DefaultSnakeConfig, 4, 3},
		{"fixed board wider than screen", func() config.SnakeConfig {
			cfg := config.DefaultSnakeConfig()
			cfg.Board.Rows, cfg.Board.Cols = 10, 60
			return cfg
		}, 80, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.cfg())
			g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: tt.w, ScreenH: tt.h})

			if g.Snapshot().Phase != PhaseTooSmall {
				t.Fatalf("phase = %s, expected too_small", g.Snapshot().Phase)
			}
			res := g.Step(core.NewInputFrame())
			if res.Moved || res.State.GameOver {
				t.Errorf("too-small game should idle, got %+v", res)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, fastConfig(), 12345)
	g2 := newGame(t, fastConfig(), 12345)

	input := core.NewInputFrame()
	for i := range 30 {
		input.Clear()
		switch i {
		case 3:
			input.Set(core.ActionDown)
		case 6:
			input.Set(core.ActionLeft)
		case 9:
			input.Set(core.ActionUp)
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Board.Head != s2.Board.Head || s1.Board.Fruit != s2.Board.Fruit {
		t.Errorf("boards diverged: head %v/%v fruit %v/%v",
			s1.Board.Head, s2.Board.Head, s1.Board.Fruit, s2.Board.Fruit)
	}
	if s1.Board.Steps != s2.Board.Steps || s1.Board.Length != s2.Board.Length {
		t.Errorf("progress diverged: %d/%d steps", s1.Board.Steps, s2.Board.Steps)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newGame(t, config.DefaultSnakeConfig(), 42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.board.Heading() != board.Right {
		t.Errorf("heading = %v, reversal should be ignored", g.board.Heading())
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)
	if g.board.Heading() != board.Down {
		t.Errorf("heading = %v, expected down", g.board.Heading())
	}
}

func TestTwoTurnsInOneFrame(t *testing.T) {
	g := newGame(t, config.DefaultSnakeConfig(), 42)

	// Up then Left before the next move: both accepted, in order.
	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.board.Heading() != board.Left {
		t.Errorf("heading = %v, expected left", g.board.Heading())
	}
}

func TestMoveInterval(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	g := newGame(t, cfg, 7)
	input := core.NewInputFrame()

	for range cfg.Speed.MoveEveryTicks - 1 {
		if g.Step(input).Moved {
			t.Fatal("snake moved before the interval elapsed")
		}
	}
	if !g.Step(input).Moved {
		t.Fatal("snake should move once the interval elapses")
	}
	if g.board.Steps() != 1 {
		t.Errorf("Steps() = %d, expected 1", g.board.Steps())
	}
}

func TestPauseStopsMovement(t *testing.T) {
	g := newGame(t, fastConfig(), 7)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	input.Clear()
	for range 10 {
		g.Step(input)
	}
	if g.board.Steps() != 0 {
		t.Errorf("Steps() = %d while paused, expected 0", g.board.Steps())
	}

	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused || g.board.Steps() != 1 {
		t.Errorf("unpause should resume movement, steps = %d", g.board.Steps())
	}
}

func TestWallCollisionEndsSession(t *testing.T) {
	g := newGame(t, fastConfig(), 3)
	runUntilOver(t, g, nil)

	// Straight right from column 20 of 40: 18 moves, then the wall at 39.
	snap := g.Snapshot()
	if snap.Phase != PhaseGameOver || snap.Board.Cause != board.CauseWall {
		t.Fatalf("phase = %s cause = %v, expected game over by wall", snap.Phase, snap.Board.Cause)
	}
	if snap.Board.Steps != 18 {
		t.Errorf("Steps = %d, expected 18", snap.Board.Steps)
	}

	rec := g.Recording()
	if rec == nil {
		t.Fatal("Recording() should be available once the session ends")
	}
	if rec.Outcome != "dead:wall" || rec.Steps != 18 || len(rec.Turns) != 0 {
		t.Errorf("recording = %+v", rec)
	}
}

func TestRecordingNilWhileRunning(t *testing.T) {
	g := newGame(t, fastConfig(), 3)
	g.Step(core.NewInputFrame())
	if g.Recording() != nil {
		t.Error("Recording() should be nil while alive")
	}
}

func TestRestartDrawsNewSeed(t *testing.T) {
	g := newGame(t, fastConfig(), 3)
	runUntilOver(t, g, nil)

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Board.Steps != 0 || snap.Board.Length != 1 {
		t.Errorf("restart should start a fresh board, got %+v", snap)
	}
	if snap.Seed == 3 {
		t.Error("restart should draw a new seed")
	}
}

func TestResizeAppliesOnRestart(t *testing.T) {
	g := newGame(t, fastConfig(), 3)
	runUntilOver(t, g, nil)

	g.Resize(20, 7)
	if g.Snapshot().Phase != PhaseGameOver {
		t.Fatal("resizing a finished session should keep it on screen")
	}

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Board.Rows != 6 || snap.Board.Cols != 10 {
		t.Errorf("phase = %s board = %dx%d after restart on 20x7, expected playing 6x10",
			snap.Phase, snap.Board.Rows, snap.Board.Cols)
	}

	runUntilOver(t, g, nil)
	g.Resize(4, 3)
	g.Step(input)
	if phase := g.Snapshot().Phase; phase != PhaseTooSmall {
		t.Errorf("phase = %s after restart on 4x3, expected too_small", phase)
	}
}

func TestResizeRecentersBoard(t *testing.T) {
	cfg := fastConfig()
	cfg.Board.Rows = 10
	cfg.Board.Cols = 12

	g := newGame(t, cfg, 1)
	g.Resize(100, 30)
	if g.originX != (100-24)/2 || g.originY != hudHeight+(30-hudHeight-10)/2 {
		t.Errorf("origin = (%d,%d) after resize, expected the board centered", g.originX, g.originY)
	}
}

func TestReplayReproducesLiveSession(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		live := newGame(t, fastConfig(), seed)
		runUntilOver(t, live, rand.New(rand.NewSource(seed*31)))
		rec := live.Recording()
		if rec == nil {
			t.Fatalf("seed %d: no recording", seed)
		}

		played := NewReplay(fastConfig(), rec)
		played.Reset(core.RuntimeConfig{Seed: 999, ScreenW: 80, ScreenH: 24})
		// Steering input must be ignored during playback.
		runUntilOver(t, played, rand.New(rand.NewSource(seed)))

		a, b := live.Snapshot().Board, played.Snapshot().Board
		if a.Head != b.Head || a.Steps != b.Steps || a.Length != b.Length || a.Cause != b.Cause {
			t.Errorf("seed %d: replay diverged: head %v/%v steps %d/%d length %d/%d",
				seed, a.Head, b.Head, a.Steps, b.Steps, a.Length, b.Length)
		}
		if played.Recording() != nil {
			t.Errorf("seed %d: a replay must not produce a new recording", seed)
		}
		if replay.OutcomeOf(played.board) != rec.Outcome {
			t.Errorf("seed %d: outcome %q, recorded %q", seed, replay.OutcomeOf(played.board), rec.Outcome)
		}
	}
}

func TestReplayRestartRewindsScript(t *testing.T) {
	live := newGame(t, fastConfig(), 8)
	runUntilOver(t, live, rand.New(rand.NewSource(77)))
	rec := live.Recording()
	if rec == nil {
		t.Fatal("no recording")
	}

	played := NewReplay(fastConfig(), rec)
	played.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	script := played.script
	runUntilOver(t, played, nil)
	first := played.Snapshot().Board

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	played.Step(input)
	if played.script != script {
		t.Error("restarting a replay should rewind its script, not rebuild it")
	}
	if played.Snapshot().Board.Steps != 0 {
		t.Fatalf("restart should start playback from step 0")
	}

	runUntilOver(t, played, nil)
	second := played.Snapshot().Board
	if first.Head != second.Head || first.Steps != second.Steps || first.Length != second.Length {
		t.Errorf("second playback diverged: head %v/%v steps %d/%d", first.Head, second.Head, first.Steps, second.Steps)
	}
	if first.Steps != rec.Steps {
		t.Errorf("Steps = %d, recorded %d", first.Steps, rec.Steps)
	}
}

func TestRender(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.Rows = 6
	cfg.Board.Cols = 8

	g := New(cfg)
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 40, ScreenH: 10})
	screen := core.NewScreen(40, 10)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Snake") || !strings.Contains(screen.Row(0), "Length: 1") {
		t.Errorf("HUD = %q", screen.Row(0))
	}

	// 6 rows in 9 free lines: one blank line above, then the top wall.
	top := screen.Row(g.originY)
	if strings.Count(top, string(glyphWall)) != 16 {
		t.Errorf("top wall row = %q, expected 8 cells of width 2", top)
	}
	if !strings.ContainsRune(screen.String(), glyphFruit) {
		t.Error("fruit glyph missing")
	}

	head := g.board.Head()
	cell := screen.GetCell(g.originX+head.Col*2, g.originY+head.Row)
	if cell.Color != core.ColorBrightBlue {
		t.Errorf("head color = %v, expected bright blue", cell.Color)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, fastConfig(), 3)
	screen := core.NewScreen(80, 24)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay missing")
	}

	g.Step(input) // unpause
	runUntilOver(t, g, nil)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay missing")
	}
}
