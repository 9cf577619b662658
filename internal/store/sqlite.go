package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency under simultaneous first-access pins.
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS daily_words (
		day TEXT NOT NULL,
		list_id TEXT NOT NULL,
		word TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (day, list_id)
	);

	CREATE TABLE IF NOT EXISTS outcomes (
		session_id TEXT NOT NULL,
		list_id TEXT NOT NULL,
		day TEXT NOT NULL,
		attempt INTEGER NOT NULL,
		won INTEGER NOT NULL,
		guesses INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		UNIQUE (session_id, list_id, day, attempt)
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_day ON outcomes(day);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// GetDailyWord returns the pinned word for (day, listID), "" when unpinned.
func (s *SQLiteStore) GetDailyWord(ctx context.Context, day, listID string) (string, error) {
	query := `SELECT word FROM daily_words WHERE day = ? AND list_id = ?`

	var word string
	err := s.db.QueryRowContext(ctx, query, day, listID).Scan(&word)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("scan daily word: %w", err)
	}
	return word, nil
}

// PinDailyWord inserts the pin unless a concurrent writer beat us to it,
// then reads back whichever word won. The unique constraint on
// (day, list_id) is what arbitrates the race; the insert never overwrites.
func (s *SQLiteStore) PinDailyWord(ctx context.Context, day, listID, word string) (string, error) {
	insert := `
	INSERT INTO daily_words (day, list_id, word, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(day, list_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, insert, day, listID, word, time.Now().Unix()); err != nil {
		return "", fmt.Errorf("pin daily word: %w", err)
	}

	pinned, err := s.GetDailyWord(ctx, day, listID)
	if err != nil {
		return "", fmt.Errorf("read back daily word: %w", err)
	}
	if pinned == "" {
		return "", fmt.Errorf("daily word for (%s, %s) missing after pin", day, listID)
	}
	return pinned, nil
}

// RecordOutcome appends one outcome row. The unique constraint makes a
// replayed terminal transition a no-op.
func (s *SQLiteStore) RecordOutcome(ctx context.Context, outcome Outcome) error {
	query := `
	INSERT INTO outcomes (session_id, list_id, day, attempt, won, guesses, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id, list_id, day, attempt) DO NOTHING`

	won := 0
	if outcome.Won {
		won = 1
	}

	_, err := s.db.ExecContext(ctx, query,
		outcome.SessionID, outcome.ListID, outcome.Day, outcome.Attempt,
		won, outcome.Guesses, outcome.FinishedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// CountOutcomes reports the number of recorded outcomes for a day.
func (s *SQLiteStore) CountOutcomes(ctx context.Context, day string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outcomes WHERE day = ?`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count outcomes: %w", err)
	}
	return count, nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
