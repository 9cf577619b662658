package game

import (
	"errors"
	"fmt"

	"wurdle/internal/constants"
)

var (
	ErrGameOver       = errors.New(constants.ErrorCodeGameOver)
	ErrInvalidLength  = errors.New(constants.ErrorCodeInvalidLength)
	ErrDuplicateGuess = errors.New(constants.ErrorCodeDuplicateGuess)
	ErrHardModeLocked = errors.New(constants.ErrorCodeHardModeLocked)
)

// HardModeViolationError reports the first previously revealed letter a
// candidate guess fails to reuse.
type HardModeViolationError struct {
	Letter   string
	Required int
	Found    int
}

func (e *HardModeViolationError) Error() string {
	return fmt.Sprintf("guess must contain at least %d %s%s (found %d)",
		e.Required, e.Letter, plural(e.Required), e.Found)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "'s"
}
