package game

import (
	"wurdle/internal/constants"
)

// GuessResult is the per-letter verdict for one board cell.
type GuessResult struct {
	Letter string `json:"letter"`
	Status string `json:"status"`
}

// GuessRecord pairs a played guess with its verdict row.
type GuessRecord struct {
	Word   string        `json:"word"`
	Result []GuessResult `json:"result"`
}

// Evaluate scores guess against secret with the two-pass frequency-budget
// algorithm. Pass 1 marks exact positions and consumes those letters from the
// secret's budget; pass 2 walks the remaining positions left-to-right, so
// earlier occurrences of a repeated letter claim "present" before later ones.
// Callers guarantee both words are uppercase and WordLength letters; the
// function is pure and deterministic.
func Evaluate(secret, guess string) []GuessResult {
	result := make([]GuessResult, constants.WordLength)
	remaining := make(map[byte]int, constants.WordLength)

	for i := 0; i < constants.WordLength; i++ {
		if guess[i] == secret[i] {
			result[i] = GuessResult{Letter: string(guess[i]), Status: constants.GuessStatusCorrect}
		} else {
			remaining[secret[i]]++
		}
	}

	for i := 0; i < constants.WordLength; i++ {
		if result[i].Status != "" {
			continue
		}
		letter := guess[i]
		if remaining[letter] > 0 {
			remaining[letter]--
			result[i] = GuessResult{Letter: string(letter), Status: constants.GuessStatusPresent}
		} else {
			result[i] = GuessResult{Letter: string(letter), Status: constants.GuessStatusAbsent}
		}
	}

	return result
}
