// Package handlers owns the HTTP surface: the JSON game API, its
// middleware, and the App container everything is wired through.
package handlers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"wurdle/internal/catalog"
	"wurdle/internal/constants"
	"wurdle/internal/daily"
	"wurdle/internal/session"
	"wurdle/internal/store"
	"wurdle/internal/util"
)

type App struct {
	Catalog  *catalog.Catalog
	Selector *daily.Selector
	Recorder store.OutcomeRecorder
	Repo     store.Repository
	Sessions *session.Registry

	IsProduction   bool
	StartTime      time.Time
	CookieMaxAge   time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	RateLimiterTTL time.Duration

	limiterMu sync.RWMutex
	limiters  map[string]*rateLimiterEntry
}

func NewApp(cat *catalog.Catalog, sel *daily.Selector, recorder store.OutcomeRecorder, repo store.Repository, sessions *session.Registry) *App {
	return &App{
		Catalog:        cat,
		Selector:       sel,
		Recorder:       recorder,
		Repo:           repo,
		Sessions:       sessions,
		StartTime:      time.Now(),
		CookieMaxAge:   util.GetEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		RateLimitRPS:   util.GetEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: util.GetEnvInt("RATE_LIMIT_BURST", 10),
		RateLimiterTTL: util.GetEnvDuration("RATE_LIMITER_TTL", 1*time.Hour),
		limiters:       make(map[string]*rateLimiterEntry),
	}
}

// RegisterRoutes attaches the game API to the router. Mutating routes go
// through the per-IP rate limiter.
func (app *App) RegisterRoutes(router *gin.Engine) {
	router.GET(constants.RouteHome, app.HomeHandler)
	router.GET(constants.RouteState, app.StateHandler)
	router.POST(constants.RouteGuess, app.RateLimitMiddleware(), app.GuessHandler)
	router.POST(constants.RouteHardMode, app.RateLimitMiddleware(), app.HardModeToggleHandler)
	router.POST(constants.RouteNewGame, app.RateLimitMiddleware(), app.NewGameHandler)
	router.GET(constants.RouteHealthz, app.HealthzHandler)
}

// StartCleanupRoutines launches the background sweeps for idle sessions and
// stale rate limiters.
func (app *App) StartCleanupRoutines() {
	app.Sessions.StartCleanup(10 * time.Minute)

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			app.cleanupStaleLimiters()
		}
	}()

	util.LogInfo("Started cleanup routines for sessions and rate limiters")
}
