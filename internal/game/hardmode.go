package game

import (
	"wurdle/internal/constants"
)

// CheckHardMode verifies that a candidate guess reuses every letter revealed
// as correct or present by the prior records. Required counts accumulate
// across records: a letter revealed once in each of two guesses must appear
// at least twice in the candidate. The check never sees the secret, and it
// stops at the first violated letter in first-reveal order.
func CheckHardMode(history []GuessRecord, candidate string) error {
	required := make(map[byte]int)
	var order []byte

	for _, rec := range history {
		for _, r := range rec.Result {
			if r.Status != constants.GuessStatusCorrect && r.Status != constants.GuessStatusPresent {
				continue
			}
			letter := r.Letter[0]
			if _, seen := required[letter]; !seen {
				order = append(order, letter)
			}
			required[letter]++
		}
	}

	found := make(map[byte]int, len(candidate))
	for i := 0; i < len(candidate); i++ {
		found[candidate[i]]++
	}

	for _, letter := range order {
		if found[letter] < required[letter] {
			return &HardModeViolationError{
				Letter:   string(letter),
				Required: required[letter],
				Found:    found[letter],
			}
		}
	}
	return nil
}
