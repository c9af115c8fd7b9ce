package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `List the most recent recorded sessions.

In a terminal this opens an interactive browser: Enter watches the
selected session, X deletes it. With --plain, or when output is not
a terminal, prints a table instead.

Examples:
  snake replays
  snake replays --plain --limit 5
  snake replays delete 12`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runReplays,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysDelete,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of sessions to list")
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the browser")
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printSessions(store)
	}

	width, height := terminalSize()
	id, err := tui.RunBrowser(store, width, height)
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if id == 0 {
		return nil
	}
	return watch(store, id)
}

func printSessions(store *storage.Store) error {
	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recorded Sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake' and finish a game to record one!")
		return nil
	}

	fmt.Printf("  %-6s  %-10s  %-6s  %-6s  %-7s  %s\n", "ID", "Outcome", "Steps", "Turns", "Board", "Date")
	fmt.Printf("  %-6s  %-10s  %-6s  %-6s  %-7s  %s\n", "--", "-------", "-----", "-----", "-----", "----")
	for _, s := range sessions {
		board := fmt.Sprintf("%dx%d", s.Cols, s.Rows)
		fmt.Printf("  %-6d  %-10s  %-6d  %-6d  %-7s  %s\n",
			s.ID, s.Outcome, s.Steps, s.Turns, board, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplaysDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSession(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no session #%d", id)
		}
		return err
	}
	logger.Info("session deleted", "id", id)
	fmt.Printf("Deleted session #%d\n", id)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", s)
	}
	return id, nil
}
