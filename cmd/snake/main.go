// snake is a single-screen Snake game for the terminal.
//
// Usage:
//
//	snake [play]               - Play a game
//	snake serve                - Start SSH server for remote play
//	snake replays              - Browse recorded sessions
//	snake replays delete <id>  - Delete a recorded session
//	snake replay <id>          - Watch a recorded session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/sessions.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-file <path>     - Write logs to a file (TUI commands default to ~/.snake/snake.log)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

var (
	logger    = log.NewWithOptions(os.Stderr, log.Options{Prefix: "snake"})
	logCloser io.Closer
)

// annotationTUI marks commands that put Bubble Tea on the alternate screen.
// Their logs go to a file so they don't garble the display.
const annotationTUI = "tui"

const defaultLogFile = "~/.snake/snake.log"

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a single-screen Snake game for the terminal.

Steer the snake to the fruit; each fruit makes it one cell longer.
Hitting a wall or the snake's own body ends the session. Filling
every free cell wins. Finished sessions are recorded and can be
watched again.

Available commands:
  play     - Play a game (default)
  serve    - Start SSH server for remote play
  replays  - Browse and delete recorded sessions
  replay   - Watch a recorded session

Examples:
  snake
  snake --difficulty hard
  snake serve --ssh :2222
  snake replays --plain
  snake replay 12`,
	Args:              cobra.NoArgs,
	Annotations:       map[string]string{annotationTUI: "true"},
	PersistentPreRunE: setupLogger,
	RunE:              runPlay,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default ~/.snake/snake.log for TUI commands, stderr otherwise)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// setupLogger configures the shared logger from the global flags.
func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if path := logPath(cmd); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return err
		}
		w = f
		logCloser = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return nil
}

// logPath returns the log file for cmd, or "" to log to stderr.
func logPath(cmd *cobra.Command) string {
	if flagLogFile != "" {
		return flagLogFile
	}
	if usesScreen(cmd) {
		return defaultLogFile
	}
	return ""
}

// usesScreen reports whether cmd will run a Bubble Tea program.
func usesScreen(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationTUI] != "true" {
		return false
	}
	for _, name := range []string{"plain", "headless"} {
		if on, err := cmd.Flags().GetBool(name); err == nil && on {
			return false
		}
	}
	return true
}

func openLogFile(path string) (*os.File, error) {
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	logger.Debug("config loaded",
		"move_every", cfg.Speed.MoveEveryTicks,
		"difficulty", cfg.Difficulty.Enabled,
		"rows", cfg.Board.Rows,
		"cols", cfg.Board.Cols,
	)
	return cfg, nil
}

// terminalSize returns the current terminal size, or 80x24 when unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStore opens the sessions database; failures only disable recording.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database, recording disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
