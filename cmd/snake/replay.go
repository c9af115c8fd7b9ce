package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagHeadless bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded session",
	Long: `Play back a recorded session move for move.

The board is rebuilt from the recorded seed and dimensions, so the
terminal must be at least as large as it was when the session was
played. With --headless the session is simulated without a screen
and its final state is printed.

Examples:
  snake replay 12
  snake replay 12 --fps 120
  snake replay 12 --headless`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without a screen and print the result")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if flagHeadless {
		return verify(store, id)
	}
	return watch(store, id)
}

// loadSession fetches a recording, turning a missing id into a readable error.
func loadSession(store *storage.Store, id int64) (*replay.Recording, error) {
	rec, err := store.Session(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no session #%d", id)
	}
	return rec, err
}

// watch plays a recorded session in the terminal.
func watch(store *storage.Store, id int64) error {
	rec, err := loadSession(store, id)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     rec.Seed,
	}

	logger.Info("watching session", "id", id, "seed", rec.Seed, "turns", len(rec.Turns))
	// No store: a replay never records itself.
	if err := tui.Run(snake.NewReplay(cfg, rec), nil, rc, logger); err != nil {
		return fmt.Errorf("running replay: %w", err)
	}
	return nil
}

// verify simulates a session without rendering and compares the result.
func verify(store *storage.Store, id int64) error {
	rec, err := loadSession(store, id)
	if err != nil {
		return err
	}

	b, err := replay.Run(rec)
	if err != nil {
		return err
	}

	outcome := replay.OutcomeOf(b)
	fmt.Printf("Session #%d: %dx%d board, seed %d, %d turns\n", rec.ID, rec.Cols, rec.Rows, rec.Seed, len(rec.Turns))
	fmt.Printf("  length %d after %d steps, %s\n", b.Len(), b.Steps(), outcome)

	if outcome != rec.Outcome || b.Steps() != rec.Steps {
		return fmt.Errorf("replay diverged: recorded %s after %d steps", rec.Outcome, rec.Steps)
	}
	return nil
}
