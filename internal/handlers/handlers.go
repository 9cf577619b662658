package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wurdle/internal/constants"
	"wurdle/internal/daily"
	"wurdle/internal/game"
	"wurdle/internal/metrics"
	"wurdle/internal/session"
	"wurdle/internal/store"
	"wurdle/internal/util"
)

type guessRequest struct {
	Guess string `json:"guess"`
}

// ensureSession returns the caller's session for today on the requested
// list, creating or rolling it over as needed. Each list keeps its own
// session, so switching lists never resets another list's game. A written
// error response is signalled by ok=false.
func (app *App) ensureSession(c *gin.Context) (*game.Session, bool) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateID(c, app.CookieMaxAge, app.IsProduction)
	today := util.Today()
	listID := c.Query("list")
	if listID == "" {
		listID = app.Catalog.DefaultListID()
	}

	sess, exists := app.Sessions.Get(sessionID, listID)
	if exists && sess.Day == today {
		return sess, true
	}
	if exists {
		util.LogInfo("Session %s rolled over from %s to %s", sessionID, sess.Day, today)
	}

	word, committed, err := app.Selector.WordFor(ctx, today, listID)
	if err != nil {
		var unknown *daily.UnknownListError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   constants.ErrorCodeUnknownWordList,
				"message": unknown.Error(),
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return nil, false
	}

	sess = game.NewSession(sessionID, listID, today, word, committed)
	app.Sessions.Put(sess)
	return sess, true
}

// HomeHandler initializes or rolls over the day's session and returns its
// sanitized state.
func (app *App) HomeHandler(c *gin.Context) {
	sess, ok := app.ensureSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, app.statePayload(sess))
}

// StateHandler returns the current session state.
func (app *App) StateHandler(c *gin.Context) {
	sess, ok := app.ensureSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, app.statePayload(sess))
}

// GuessHandler accepts one guess, scores it, and persists the outcome when
// the session just finished.
func (app *App) GuessHandler(c *gin.Context) {
	sess, ok := app.ensureSession(c)
	if !ok {
		return
	}

	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   constants.ErrorCodeInvalidRequest,
			"message": "body must be JSON with a \"guess\" string",
		})
		return
	}

	guess := strings.ToUpper(strings.TrimSpace(req.Guess))
	util.LogInfo("Session %s guessed: %s (attempt %d/%d)", sess.ID, guess, sess.GuessesUsed()+1, constants.MaxGuesses)

	if len(guess) != constants.WordLength {
		app.rejectGuess(c, game.ErrInvalidLength)
		return
	}

	list, _ := app.Catalog.List(sess.ListID)
	if !app.Catalog.Accepts(list, guess) {
		metrics.RecordGuess("rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   constants.ErrorCodeNotInWordList,
			"message": "word is not in the word list",
		})
		return
	}

	out, err := sess.Submit(guess)
	if err != nil {
		app.rejectGuess(c, err)
		return
	}

	var message, shareText any
	switch {
	case out.Won:
		metrics.RecordGuess("won")
		message = formatWinMessage(sess.GuessesUsed())
		shareText = sess.ShareText()
		util.LogInfo("Session %s won in %d/%d", sess.ID, sess.GuessesUsed(), constants.MaxGuesses)
	case out.JustFinished:
		metrics.RecordGuess("lost")
		message = "Out of guesses! The word was " + sess.Secret + "."
		shareText = sess.ShareText()
		util.LogInfo("Session %s lost, word was %s", sess.ID, sess.Secret)
	default:
		metrics.RecordGuess("accepted")
	}

	if out.JustFinished {
		app.recordOutcome(c, sess, out.Won)
	}

	c.JSON(http.StatusOK, gin.H{
		"guess":     guess,
		"verdict":   out.Result,
		"gameOver":  sess.Terminal(),
		"won":       out.Won,
		"message":   message,
		"shareText": shareText,
	})
}

// HardModeToggleHandler flips the session's hard-mode flag.
func (app *App) HardModeToggleHandler(c *gin.Context) {
	sess, ok := app.ensureSession(c)
	if !ok {
		return
	}
	if err := sess.ToggleHardMode(); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   constants.ErrorCodeHardModeLocked,
			"message": "hard mode cannot change once a guess has been made",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hardMode": sess.HardMode})
}

// NewGameHandler is the explicit replay override. The daily secret stays the
// same; only the board resets.
func (app *App) NewGameHandler(c *gin.Context) {
	sess, ok := app.ensureSession(c)
	if !ok {
		return
	}
	if sess.GuessesUsed() > 0 || sess.Terminal() {
		next := sess.Replay()
		app.Sessions.Put(next)
		util.LogInfo("Session %s replaying day %s (attempt %d)", next.ID, next.Day, next.Attempt)
		sess = next
	}
	c.JSON(http.StatusOK, app.statePayload(sess))
}

func (app *App) HealthzHandler(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	storeStatus := "ok"
	outcomesToday := 0
	if app.Repo != nil {
		if err := app.Repo.Ping(c.Request.Context()); err != nil {
			storeStatus = "unreachable"
		} else if n, err := app.Repo.CountOutcomes(c.Request.Context(), util.Today()); err == nil {
			outcomesToday = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"store":           storeStatus,
		"words_loaded":    app.Catalog.WordCount(),
		"accepted_words":  app.Catalog.AcceptedCount(),
		"word_lists":      app.Catalog.ListIDs(),
		"active_sessions": app.Sessions.Len(),
		"outcomes_today":  outcomesToday,
		"memory_alloc_mb": m.Alloc / 1024 / 1024,
		"memory_sys_mb":   m.Sys / 1024 / 1024,
		"memory_gc_count": m.NumGC,
		"uptime":          util.FormatUptime(time.Since(app.StartTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// recordOutcome persists the terminal result. The recorder queues failures
// for background retry, so the player response never depends on it.
func (app *App) recordOutcome(c *gin.Context, sess *game.Session, won bool) {
	metrics.RecordOutcome(won)

	outcome, err := store.NewOutcome(sess.ID, sess.ListID, sess.Day, sess.Attempt, won, sess.GuessesUsed(), time.Now())
	if err != nil {
		util.LogWarn("Invalid outcome for session %s: %v", sess.ID, err)
		return
	}
	if !sess.Committed {
		util.LogWarn("Session %s finished on an uncommitted daily word, outcome recorded anyway", sess.ID)
	}
	if err := app.Recorder.RecordOutcome(c.Request.Context(), outcome); err != nil {
		util.LogWarn("Failed to record outcome for session %s: %v", sess.ID, err)
	}
}

func (app *App) rejectGuess(c *gin.Context, err error) {
	metrics.RecordGuess("rejected")

	var violation *game.HardModeViolationError
	switch {
	case errors.Is(err, game.ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{
			"error":   constants.ErrorCodeGameOver,
			"message": "already played today; the game is finished",
		})
	case errors.Is(err, game.ErrInvalidLength):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   constants.ErrorCodeInvalidLength,
			"message": "guess must be exactly 5 letters",
		})
	case errors.Is(err, game.ErrDuplicateGuess):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   constants.ErrorCodeDuplicateGuess,
			"message": "word already guessed this game",
		})
	case errors.As(err, &violation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   constants.ErrorCodeHardModeViolation,
			"letter":  violation.Letter,
			"message": violation.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

// statePayload sanitizes a session for the client. The secret appears only
// once the session is terminal.
func (app *App) statePayload(sess *game.Session) gin.H {
	list, _ := app.Catalog.List(sess.ListID)

	payload := gin.H{
		"day":         sess.Day,
		"listId":      sess.ListID,
		"status":      sess.Status,
		"hardMode":    sess.HardMode,
		"guesses":     sess.Guesses,
		"guessesUsed": sess.GuessesUsed(),
		"maxGuesses":  constants.MaxGuesses,
		"gameOver":    sess.Terminal(),
		"won":         sess.Won(),
		"shareText":   nil,
	}
	if list != nil {
		payload["hint"] = list.Hint(sess.Secret)
	}
	if sess.Terminal() {
		payload["shareText"] = sess.ShareText()
		payload["targetWord"] = sess.Secret
	}
	return payload
}

func formatWinMessage(used int) string {
	return fmt.Sprintf("You got it in %d/%d!", used, constants.MaxGuesses)
}
