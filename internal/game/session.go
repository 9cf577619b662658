package game

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"wurdle/internal/constants"
	"wurdle/internal/util"
)

// Status is the session lifecycle state. Won and Lost are terminal.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Session owns one player-day game. The secret is never serialized; the
// registry and handlers mutate a session only through Submit and
// ToggleHardMode.
type Session struct {
	ID       string        `json:"id"`
	ListID   string        `json:"listId"`
	Day      string        `json:"day"`
	Attempt  int           `json:"attempt"`
	Secret   string        `json:"-"`
	HardMode bool          `json:"hardMode"`
	Status   Status        `json:"status"`
	Guesses  []GuessRecord `json:"guesses"`

	// Committed is false when the secret could not be durably pinned and is
	// valid for this session only.
	Committed bool `json:"-"`

	// LastAccessTime is owned by the session registry, which writes it under
	// its lock. Nothing else may touch it once the session is shared.
	LastAccessTime time.Time `json:"-"`
}

// SubmitResult is what one accepted guess produced.
type SubmitResult struct {
	Result       []GuessResult
	Won          bool
	JustFinished bool
}

func NewSession(id, listID, day, secret string, committed bool) *Session {
	return &Session{
		ID:             id,
		ListID:         listID,
		Day:            day,
		Attempt:        1,
		Secret:         secret,
		Status:         StatusNotStarted,
		Guesses:        []GuessRecord{},
		Committed:      committed,
		LastAccessTime: time.Now(),
	}
}

// Replay returns a fresh session for the same player-day and secret. The
// hard-mode preference carries over; the attempt counter distinguishes the
// replay's outcome record from the original's.
func (s *Session) Replay() *Session {
	next := NewSession(s.ID, s.ListID, s.Day, s.Secret, s.Committed)
	next.Attempt = s.Attempt + 1
	next.HardMode = s.HardMode
	return next
}

func (s *Session) Terminal() bool {
	return s.Status == StatusWon || s.Status == StatusLost
}

func (s *Session) Won() bool {
	return s.Status == StatusWon
}

func (s *Session) GuessesUsed() int {
	return len(s.Guesses)
}

// Submit accepts one guess and drives the state machine. Word-list
// membership is the caller's concern; everything else (terminal guard,
// length, duplicates, hard mode, evaluation, transition) happens here.
func (s *Session) Submit(guess string) (SubmitResult, error) {
	if s.Terminal() {
		util.LogWarn("Session %s attempted guess on finished game", s.ID)
		return SubmitResult{}, ErrGameOver
	}
	if len(guess) != constants.WordLength {
		return SubmitResult{}, ErrInvalidLength
	}
	if slices.ContainsFunc(s.Guesses, func(r GuessRecord) bool { return r.Word == guess }) {
		return SubmitResult{}, ErrDuplicateGuess
	}
	if s.HardMode {
		if err := CheckHardMode(s.Guesses, guess); err != nil {
			return SubmitResult{}, err
		}
	}

	result := Evaluate(s.Secret, guess)
	s.Guesses = append(s.Guesses, GuessRecord{Word: guess, Result: result})
	s.Status = StatusInProgress

	out := SubmitResult{Result: result}
	switch {
	case guess == s.Secret:
		s.Status = StatusWon
		out.Won = true
		out.JustFinished = true
	case len(s.Guesses) >= constants.MaxGuesses:
		s.Status = StatusLost
		out.JustFinished = true
	}
	return out, nil
}

// ToggleHardMode flips the hard-mode flag. The flag locks as soon as any
// guess has been made, and stays locked on a terminal session.
func (s *Session) ToggleHardMode() error {
	if s.Terminal() || len(s.Guesses) > 0 {
		return ErrHardModeLocked
	}
	s.HardMode = !s.HardMode
	return nil
}

var shareGlyphs = map[string]string{
	constants.GuessStatusCorrect: "🟩",
	constants.GuessStatusPresent: "🟨",
	constants.GuessStatusAbsent:  "⬜",
}

// ShareText renders the result for sharing: one glyph row per guess in
// submission order, then a header naming the puzzle day and the guesses-used
// ratio. A lost game shows X in place of the guess count. Empty until the
// session is terminal.
func (s *Session) ShareText() string {
	if !s.Terminal() {
		return ""
	}

	rows := lo.Map(s.Guesses, func(rec GuessRecord, _ int) string {
		return strings.Join(lo.Map(rec.Result, func(r GuessResult, _ int) string {
			return shareGlyphs[r.Status]
		}), "")
	})

	used := "X"
	if s.Status == StatusWon {
		used = fmt.Sprintf("%d", len(s.Guesses))
	}
	header := fmt.Sprintf("Wurdle %s %s/%d", s.Day, used, constants.MaxGuesses)

	return strings.Join(append(rows, header), "\n")
}
