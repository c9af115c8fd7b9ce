// Package config provides YAML-based configuration loading and difficulty
// management for the snake game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Speed      SpeedConfig      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid geometry.
type BoardConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Terminal columns per grid cell
	CellHeight int `yaml:"cell_height"` // Terminal rows per grid cell
	Rows       int `yaml:"rows"`        // 0 = derive from terminal height
	Cols       int `yaml:"cols"`        // 0 = derive from terminal width
}

// SpeedConfig defines how often the snake moves, in platform frames.
type SpeedConfig struct {
	MoveEveryTicks    int `yaml:"move_every_ticks"`
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"` // Fastest interval at max difficulty
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases during a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "length", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Fruit eaten / ticks at which max difficulty is reached
}

// Validate checks that the config can drive a game.
func (c SnakeConfig) Validate() error {
	if c.Board.CellWidth <= 0 || c.Board.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size %dx%d", ErrInvalidConfig, c.Board.CellWidth, c.Board.CellHeight)
	}
	if c.Board.Rows < 0 || c.Board.Cols < 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Rows, c.Board.Cols)
	}
	if c.Speed.MoveEveryTicks <= 0 {
		return fmt.Errorf("%w: move_every_ticks %d", ErrInvalidConfig, c.Speed.MoveEveryTicks)
	}
	if c.Speed.MinMoveEveryTicks <= 0 || c.Speed.MinMoveEveryTicks > c.Speed.MoveEveryTicks {
		return fmt.Errorf("%w: min_move_every_ticks %d", ErrInvalidConfig, c.Speed.MinMoveEveryTicks)
	}
	switch c.Difficulty.Progression.Type {
	case "length", "time", "none", "":
	default:
		return fmt.Errorf("%w: progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is accepted and means
// "use the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
