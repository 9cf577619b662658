package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"wurdle/internal/constants"
)

func newTestSession() *Session {
	return NewSession("sess1", "classic", "2026-08-26", "CRANE", true)
}

func TestSubmitWin(t *testing.T) {
	s := newTestSession()
	if s.Status != StatusNotStarted {
		t.Fatalf("new session status = %s, want %s", s.Status, StatusNotStarted)
	}

	out, err := s.Submit("TRACE")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if out.JustFinished || out.Won {
		t.Error("wrong guess must not finish the game")
	}
	if s.Status != StatusInProgress {
		t.Errorf("status = %s, want %s", s.Status, StatusInProgress)
	}

	out, err = s.Submit("CRANE")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !out.Won || !out.JustFinished {
		t.Error("matching guess must win and finish")
	}
	if s.Status != StatusWon {
		t.Errorf("status = %s, want %s", s.Status, StatusWon)
	}
	if s.GuessesUsed() != 2 {
		t.Errorf("GuessesUsed = %d, want 2", s.GuessesUsed())
	}
}

func TestSubmitLossAfterMaxGuesses(t *testing.T) {
	s := newTestSession()
	wrong := []string{"MOIST", "GUILD", "THORN", "PLUMB", "SWIFT", "DUCKY"}
	for i, g := range wrong {
		out, err := s.Submit(g)
		if err != nil {
			t.Fatalf("Submit(%s) returned error: %v", g, err)
		}
		isLast := i == constants.MaxGuesses-1
		if out.JustFinished != isLast {
			t.Errorf("guess %d JustFinished = %v, want %v", i+1, out.JustFinished, isLast)
		}
	}
	if s.Status != StatusLost {
		t.Errorf("status = %s, want %s", s.Status, StatusLost)
	}
}

func TestSubmitRejectedOnTerminalSession(t *testing.T) {
	s := newTestSession()
	if _, err := s.Submit("CRANE"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := s.Submit("TRACE"); !errors.Is(err, ErrGameOver) {
		t.Errorf("Submit on terminal session = %v, want ErrGameOver", err)
	}
	if s.GuessesUsed() != 1 {
		t.Error("rejected guess must not be appended")
	}
}

func TestSubmitValidation(t *testing.T) {
	s := newTestSession()
	if _, err := s.Submit("CRANES"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("six-letter guess = %v, want ErrInvalidLength", err)
	}
	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := s.Submit("TRACE"); !errors.Is(err, ErrDuplicateGuess) {
		t.Errorf("repeated guess = %v, want ErrDuplicateGuess", err)
	}
}

func TestSubmitHardMode(t *testing.T) {
	s := newTestSession()
	if err := s.ToggleHardMode(); err != nil {
		t.Fatalf("ToggleHardMode returned error: %v", err)
	}
	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	_, err := s.Submit("MOIST")
	var violation *HardModeViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected hard-mode violation, got %v", err)
	}
	if s.GuessesUsed() != 1 {
		t.Error("rejected guess must not consume an attempt")
	}

	if _, err := s.Submit("CRANE"); err != nil {
		t.Errorf("conforming guess rejected: %v", err)
	}
}

func TestToggleHardModeLocked(t *testing.T) {
	s := newTestSession()
	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := s.ToggleHardMode(); !errors.Is(err, ErrHardModeLocked) {
		t.Errorf("toggle after a guess = %v, want ErrHardModeLocked", err)
	}

	won := newTestSession()
	if _, err := won.Submit("CRANE"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := won.ToggleHardMode(); !errors.Is(err, ErrHardModeLocked) {
		t.Errorf("toggle on terminal session = %v, want ErrHardModeLocked", err)
	}
}

func TestStateMachineLeavesAccessTimeAlone(t *testing.T) {
	// The registry owns LastAccessTime and writes it under its lock; the
	// state machine mutating it too would race with the cleanup sweep.
	s := newTestSession()
	stamp := s.LastAccessTime

	if err := s.ToggleHardMode(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatal(err)
	}
	if !s.LastAccessTime.Equal(stamp) {
		t.Error("Submit/ToggleHardMode must not touch LastAccessTime")
	}
}

func TestShareText(t *testing.T) {
	s := newTestSession()
	if s.ShareText() != "" {
		t.Error("ShareText must be empty before the session is terminal")
	}

	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("CRANE"); err != nil {
		t.Fatal(err)
	}

	text := s.ShareText()
	lines := strings.Split(text, "\n")
	if len(lines) != s.GuessesUsed()+1 {
		t.Fatalf("share text has %d lines, want %d", len(lines), s.GuessesUsed()+1)
	}
	// TRACE against CRANE: absent, correct, correct, present, correct.
	if lines[0] != "⬜🟩🟩🟨🟩" {
		t.Errorf("row 1 = %q, want %q", lines[0], "⬜🟩🟩🟨🟩")
	}
	if lines[1] != "🟩🟩🟩🟩🟩" {
		t.Errorf("row 2 = %q, want %q", lines[1], "🟩🟩🟩🟩🟩")
	}
	if lines[2] != "Wurdle 2026-08-26 2/6" {
		t.Errorf("header = %q, want %q", lines[2], "Wurdle 2026-08-26 2/6")
	}
}

func TestShareTextLoss(t *testing.T) {
	s := newTestSession()
	for _, g := range []string{"MOIST", "GUILD", "THORN", "PLUMB", "SWIFT", "DUCKY"} {
		if _, err := s.Submit(g); err != nil {
			t.Fatal(err)
		}
	}
	lines := strings.Split(s.ShareText(), "\n")
	if len(lines) != constants.MaxGuesses+1 {
		t.Fatalf("share text has %d lines, want %d", len(lines), constants.MaxGuesses+1)
	}
	if lines[len(lines)-1] != "Wurdle 2026-08-26 X/6" {
		t.Errorf("header = %q, want %q", lines[len(lines)-1], "Wurdle 2026-08-26 X/6")
	}
}

func TestSecretNeverSerialized(t *testing.T) {
	s := newTestSession()
	if _, err := s.Submit("TRACE"); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "CRANE") {
		t.Errorf("serialized session leaks the secret: %s", data)
	}
}

func TestReplay(t *testing.T) {
	s := newTestSession()
	_ = s.ToggleHardMode()
	if _, err := s.Submit("CRANE"); err != nil {
		t.Fatal(err)
	}

	next := s.Replay()
	if next.Status != StatusNotStarted || next.GuessesUsed() != 0 {
		t.Error("replay must start fresh")
	}
	if next.Secret != s.Secret || next.Day != s.Day || next.ListID != s.ListID {
		t.Error("replay keeps the same player-day and secret")
	}
	if !next.HardMode {
		t.Error("replay carries the hard-mode preference")
	}
	if next.Attempt != s.Attempt+1 {
		t.Errorf("replay attempt = %d, want %d", next.Attempt, s.Attempt+1)
	}
}
