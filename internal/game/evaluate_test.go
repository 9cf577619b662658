package game

import (
	"strings"
	"testing"

	"wurdle/internal/constants"
)

func statuses(result []GuessResult) []string {
	out := make([]string, len(result))
	for i, r := range result {
		out[i] = r.Status
	}
	return out
}

func equalStatuses(got []GuessResult, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Status != want[i] {
			return false
		}
	}
	return true
}

func TestEvaluateLiteralTriples(t *testing.T) {
	const (
		c = constants.GuessStatusCorrect
		p = constants.GuessStatusPresent
		a = constants.GuessStatusAbsent
	)

	cases := []struct {
		secret string
		guess  string
		want   []string
	}{
		// Shared letters, no repeats.
		{"CRANE", "TRACE", []string{a, c, c, p, c}},
		// Repeated letter in the guess, single occurrence in the secret:
		// the second O exactly matches, the first O spends the remaining
		// budget, so only two O marks total.
		{"ROBOT", "ROOMY", []string{c, c, p, a, a}},
		// Repeated letter in the secret: guess has three claims on letters
		// the secret holds fewer of; earlier positions win.
		{"ALLOW", "LLAMA", []string{p, c, p, a, a}},
		// Triple letter in the guess against a single E in the secret.
		{"CRANE", "EERIE", []string{a, a, p, a, c}},
	}

	for _, tc := range cases {
		got := Evaluate(tc.secret, tc.guess)
		if !equalStatuses(got, tc.want) {
			t.Errorf("Evaluate(%s, %s) = %v, want %v", tc.secret, tc.guess, statuses(got), tc.want)
		}
	}
}

func TestEvaluateSelf(t *testing.T) {
	for _, word := range []string{"CRANE", "ALLOW", "ROBOT"} {
		for i, r := range Evaluate(word, word) {
			if r.Status != constants.GuessStatusCorrect {
				t.Errorf("Evaluate(%s, %s)[%d] = %s, want correct", word, word, i, r.Status)
			}
		}
	}
}

func TestEvaluateDisjoint(t *testing.T) {
	for i, r := range Evaluate("CRANE", "MOIST") {
		if r.Status != constants.GuessStatusAbsent {
			t.Errorf("Evaluate(CRANE, MOIST)[%d] = %s, want absent", i, r.Status)
		}
	}
}

func TestEvaluateLettersEchoGuess(t *testing.T) {
	result := Evaluate("CRANE", "TRACE")
	for i, r := range result {
		if r.Letter != string("TRACE"[i]) {
			t.Errorf("result[%d].Letter = %q, want %q", i, r.Letter, string("TRACE"[i]))
		}
	}
}

// Marks for a letter (correct + present) never exceed that letter's count in
// the secret.
func TestEvaluateNeverOverclaims(t *testing.T) {
	secrets := []string{"CRANE", "ALLOW", "ROBOT", "LEVEL", "MAMMA"}
	guesses := []string{"TRACE", "LLAMA", "ROOMY", "EERIE", "MAMMA", "ALLOW", "LEVEL"}

	for _, secret := range secrets {
		for _, guess := range guesses {
			result := Evaluate(secret, guess)
			claimed := map[string]int{}
			for _, r := range result {
				if r.Status != constants.GuessStatusAbsent {
					claimed[r.Letter]++
				}
			}
			for letter, n := range claimed {
				if have := strings.Count(secret, letter); n > have {
					t.Errorf("Evaluate(%s, %s) claims %d %s, secret has %d", secret, guess, n, letter, have)
				}
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	first := Evaluate("ALLOW", "LLAMA")
	for i := 0; i < 10; i++ {
		again := Evaluate("ALLOW", "LLAMA")
		if !equalStatuses(again, statuses(first)) {
			t.Fatalf("Evaluate is not deterministic: %v vs %v", statuses(again), statuses(first))
		}
	}
}
