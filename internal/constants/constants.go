package constants

type ContextKey string

const (
	MaxGuesses = 6
	WordLength = 5
)

// DayFormat is the UTC calendar-day key used for daily words and sessions.
const DayFormat = "2006-01-02"

const (
	GuessStatusCorrect = "correct"
	GuessStatusPresent = "present"
	GuessStatusAbsent  = "absent"
)

const (
	SessionCookieName = "session_id"
	CSRFCookieName    = "csrf_token"
)

const (
	RouteHome     = "/"
	RouteGuess    = "/guess"
	RouteHardMode = "/hard-mode/toggle"
	RouteNewGame  = "/new-game"
	RouteState    = "/state"
	RouteHealthz  = "/healthz"
	RouteMetrics  = "/metrics"
)

const (
	ErrorCodeGameOver          = "game_over"
	ErrorCodeInvalidLength     = "invalid_length"
	ErrorCodeNotInWordList     = "not_in_word_list"
	ErrorCodeHardModeViolation = "hard_mode_violation"
	ErrorCodeHardModeLocked    = "hard_mode_locked"
	ErrorCodeDuplicateGuess    = "duplicate_guess"
	ErrorCodeUnknownWordList   = "unknown_word_list"
	ErrorCodeInvalidRequest    = "invalid_request"
)

const (
	RequestIDKey ContextKey = "request_id"
)
