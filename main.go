package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wurdle/internal/catalog"
	"wurdle/internal/constants"
	"wurdle/internal/daily"
	"wurdle/internal/handlers"
	"wurdle/internal/metrics"
	"wurdle/internal/session"
	"wurdle/internal/store"
	"wurdle/internal/util"
)

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	util.LogInfo("Starting Wurdle in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	wordlistDir := util.GetEnvString("WORDLIST_DIR", "data/wordlists")
	acceptedPath := util.GetEnvString("ACCEPTED_WORDS", "data/accepted_words.txt")
	defaultList := util.GetEnvString("DEFAULT_WORDLIST", "classic")

	if !util.DirExists(wordlistDir) {
		util.LogFatal("Word-list directory does not exist: %s", wordlistDir)
	}

	cat, err := catalog.Load(wordlistDir, acceptedPath, defaultList)
	if err != nil {
		util.LogFatal("Failed to load word catalog: %v", err)
	}
	util.LogInfo("Loaded %d words across %d word-lists", cat.WordCount(), len(cat.ListIDs()))

	dbPath := util.GetEnvString("DB_PATH", "data/wurdle.db")
	repo, err := store.NewSQLite(dbPath)
	if err != nil {
		util.LogFatal("Failed to open store at %s: %v", dbPath, err)
	}

	recorder := store.NewRetryingRecorder(repo)
	retryCtx, stopRetry := context.WithCancel(context.Background())
	recorder.StartRetryLoop(retryCtx, util.GetEnvDuration("OUTCOME_RETRY_INTERVAL", time.Minute))

	selector := daily.NewSelector(repo, cat)
	sessions := session.NewRegistry(util.GetEnvDuration("SESSION_TTL", 3*time.Hour))

	app := handlers.NewApp(cat, selector, recorder, repo, sessions)
	app.IsProduction = isProduction

	router := gin.Default()

	router.Use(handlers.RequestIDMiddleware())
	router.Use(handlers.SecurityHeadersMiddleware())
	router.Use(metrics.Middleware())

	router.Use(app.CSRFMiddleware())
	router.Use(app.ValidateCSRFMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedPaths([]string{constants.RouteMetrics})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		util.LogWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		app.ApplyCacheHeaders(c)
	})

	app.RegisterRoutes(router)
	router.GET(constants.RouteMetrics, gin.WrapH(promhttp.Handler()))

	app.StartCleanupRoutines()

	startServer(router, repo, recorder, stopRetry)
}

func startServer(router *gin.Engine, repo store.Repository, recorder *store.RetryingRecorder, stopRetry context.CancelFunc) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		util.LogInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			util.LogWarn("HTTP server Shutdown: %v", err)
		}

		// One last chance for queued outcome records before the store closes.
		recorder.Flush(ctx)
		stopRetry()
		if err := repo.Close(); err != nil {
			util.LogWarn("Store close: %v", err)
		}
		close(idleConnsClosed)
	}()

	util.LogInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		util.LogFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	util.LogInfo("Server shutdown complete")
}
