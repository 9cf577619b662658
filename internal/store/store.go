// Package store provides the persistence interfaces the game core depends
// on, plus their SQLite implementation.
package store

import (
	"context"
	"fmt"
	"time"

	"wurdle/internal/constants"
)

// Outcome is the durable record of one finished session.
type Outcome struct {
	SessionID  string
	ListID     string
	Day        string
	Attempt    int
	Won        bool
	Guesses    int
	FinishedAt time.Time
}

// NewOutcome validates and builds an outcome record.
func NewOutcome(sessionID, listID, day string, attempt int, won bool, guesses int, finishedAt time.Time) (Outcome, error) {
	if sessionID == "" {
		return Outcome{}, fmt.Errorf("outcome requires a session id")
	}
	if listID == "" || day == "" {
		return Outcome{}, fmt.Errorf("outcome requires a list id and day")
	}
	if attempt < 1 {
		return Outcome{}, fmt.Errorf("attempt must be at least 1, got %d", attempt)
	}
	if guesses < 1 || guesses > constants.MaxGuesses {
		return Outcome{}, fmt.Errorf("guesses must be between 1 and %d, got %d", constants.MaxGuesses, guesses)
	}
	if finishedAt.IsZero() {
		return Outcome{}, fmt.Errorf("finishedAt cannot be zero time")
	}
	return Outcome{
		SessionID:  sessionID,
		ListID:     listID,
		Day:        day,
		Attempt:    attempt,
		Won:        won,
		Guesses:    guesses,
		FinishedAt: finishedAt,
	}, nil
}

// DailyWordStore persists the one-word-per-day pins.
type DailyWordStore interface {
	// GetDailyWord returns the pinned word for (day, listID), or "" when no
	// pin exists yet.
	GetDailyWord(ctx context.Context, day, listID string) (string, error)

	// PinDailyWord conditionally inserts a pin for (day, listID) and returns
	// the word that ended up pinned. When a concurrent writer got there
	// first, the returned word is the winner's, not the caller's.
	PinDailyWord(ctx context.Context, day, listID, word string) (string, error)
}

// OutcomeRecorder appends one result record per finished session. Writes are
// idempotent on (session, list, day, attempt); re-triggering a terminal
// transition must not duplicate the record.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome Outcome) error
}

// Repository is the full persistence surface the server wires up.
type Repository interface {
	DailyWordStore
	OutcomeRecorder

	// CountOutcomes reports how many outcomes were recorded for a day,
	// used by health diagnostics.
	CountOutcomes(ctx context.Context, day string) (int, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
