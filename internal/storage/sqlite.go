// Package storage keeps finished sessions in SQLite so they can be replayed.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for recorded sessions.
type Store struct {
	db *sql.DB
}

// SessionSummary is a recorded session without its turn list.
type SessionSummary struct {
	ID        int64
	Seed      int64
	Rows      int
	Cols      int
	Steps     int
	Turns     int
	Outcome   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			heading TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS session_turns (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			step INTEGER NOT NULL,
			heading TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession stores a finished recording with its turns.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(rec *replay.Recording) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO sessions (seed, rows, cols, heading, steps, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Seed, rec.Rows, rec.Cols, rec.Heading.String(), rec.Steps, rec.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO session_turns (session_id, seq, step, heading) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare turn insert: %w", err)
	}
	defer stmt.Close()

	for i, turn := range rec.Turns {
		if _, err := stmt.Exec(id, i, turn.Step, turn.Heading.String()); err != nil {
			return 0, fmt.Errorf("storage: cannot save turn %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// Session loads a full recording by id.
func (s *Store) Session(id int64) (*replay.Recording, error) {
	rec := &replay.Recording{ID: id}
	var heading string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT seed, rows, cols, heading, steps, outcome, created_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&rec.Seed, &rec.Rows, &rec.Cols, &heading, &rec.Steps, &rec.Outcome, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	h, ok := board.ParseHeading(heading)
	if !ok {
		return nil, fmt.Errorf("storage: session %d has bad heading %q", id, heading)
	}
	rec.Heading = h

	rows, err := s.db.Query(
		`SELECT step, heading FROM session_turns
		 WHERE session_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn replay.Turn
		var name string
		if err := rows.Scan(&turn.Step, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan turn: %w", err)
		}
		if turn.Heading, ok = board.ParseHeading(name); !ok {
			return nil, fmt.Errorf("storage: session %d has bad turn heading %q", id, name)
		}
		rec.Turns = append(rec.Turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// RecentSessions lists the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.seed, s.rows, s.cols, s.steps, s.outcome, s.created_at,
		        (SELECT COUNT(*) FROM session_turns t WHERE t.session_id = s.id)
		 FROM sessions s
		 ORDER BY s.created_at DESC, s.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var e SessionSummary
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Rows, &e.Cols, &e.Steps, &e.Outcome, &createdAt, &e.Turns); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteSession removes a session and its turns.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM session_turns WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete turns: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
