package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Snake sized to the terminal.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Esc             - Pause
  R                 - Restart (after the session ends)
  Ctrl+S            - Save a text screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow start, speeds up as the snake grows
  normal - Starts at 30% difficulty, speeds up as the snake grows
  hard   - Starts at 70% difficulty, speeds up as the snake grows
  fixed  - No progression, classic constant speed

Examples:
  snake play
  snake play --difficulty easy
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(snake.New(cfg), store, rc, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
