package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultSnakeConfig()
	cfg.Speed.MoveEveryTicks = 1
	cfg.Speed.MinMoveEveryTicks = 1

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 3}
	m := NewModel(snake.New(cfg), store, rc, log.New(io.Discard))
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesRecordingOnce(t *testing.T) {
	m, store := newTestModel(t)

	for range 100 {
		m = update(t, m, TickMsg{})
	}
	if !m.gameState.GameOver {
		t.Fatal("snake heading right should have hit the wall")
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d stored sessions, expected 1", len(sessions))
	}
	if sessions[0].Seed != 3 || sessions[0].Outcome != "dead:wall" {
		t.Errorf("stored session = %+v", sessions[0])
	}
	if m.LastSaved() != sessions[0].ID {
		t.Errorf("LastSaved() = %d, expected %d", m.LastSaved(), sessions[0].ID)
	}

	// Restart and die again: a second recording.
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if m.gameState.GameOver {
		t.Fatal("restart should start a new session")
	}
	for range 100 {
		m = update(t, m, TickMsg{})
	}
	sessions, _ = store.RecentSessions(10)
	if len(sessions) != 2 {
		t.Errorf("got %d stored sessions after restart, expected 2", len(sessions))
	}
}

func TestModelTurnsReachGame(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg{})

	snap := m.game.(*snake.Game).Snapshot()
	if snap.Board.Steps != 1 || snap.Board.Head.Row != 10 {
		t.Errorf("head = %v after one step up, expected row 10", snap.Board.Head)
	}
}

func TestModelRestartUsesCurrentSize(t *testing.T) {
	m, _ := newTestModel(t)

	for range 100 {
		m = update(t, m, TickMsg{})
	}
	if !m.gameState.GameOver {
		t.Fatal("snake heading right should have hit the wall")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if phase := m.game.(*snake.Game).Snapshot().Phase; phase != snake.PhaseGameOver {
		t.Fatalf("phase = %s after resize, finished session should stay on screen", phase)
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	// 7 game rows minus the HUD, 20 columns of 2-wide cells.
	snap := m.game.(*snake.Game).Snapshot()
	if snap.Board.Rows != 6 || snap.Board.Cols != 10 {
		t.Errorf("board = %dx%d after restart on a 20x8 window, expected 6x10",
			snap.Board.Rows, snap.Board.Cols)
	}
}

func TestModelRestartTooSmallAfterShrink(t *testing.T) {
	m, _ := newTestModel(t)

	for range 100 {
		m = update(t, m, TickMsg{})
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 6, Height: 4})
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if phase := m.game.(*snake.Game).Snapshot().Phase; phase != snake.PhaseTooSmall {
		t.Errorf("phase = %s after restart on a 6x4 window, expected too_small", phase)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelViewHasFooter(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, TickMsg{})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 25 {
		t.Fatalf("view has %d lines, expected 24 game rows plus footer", len(lines))
	}
	if !strings.Contains(lines[24], "pause") || !strings.Contains(lines[24], "quit") {
		t.Errorf("footer = %q", lines[24])
	}
}
