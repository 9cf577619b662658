package handlers

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"wurdle/internal/constants"
	"wurdle/internal/util"
)

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self'; frame-ancestors 'none';")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}
		c.Next()
	}
}

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), constants.RequestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}

// CSRFMiddleware issues the double-submit token cookie.
func (app *App) CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CSRFCookieName)
		if err != nil || len(token) < 8 {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err == nil {
				token = fmt.Sprintf("%x", b)
				secure := app.IsProduction
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(constants.CSRFCookieName, token, int(app.CookieMaxAge.Seconds()), "/", "", secure, false)
			}
		}
		c.Set(constants.CSRFCookieName, token)
		c.Next()
	}
}

// ValidateCSRFMiddleware rejects mutating requests whose token header does
// not match the cookie.
func (app *App) ValidateCSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodPost || method == http.MethodPut || method == http.MethodDelete || method == http.MethodPatch {
			cookie, _ := c.Cookie(constants.CSRFCookieName)
			token := c.GetHeader("X-CSRF-Token")
			if token == "" || cookie == "" || token != cookie {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid csrf token"})
				return
			}
		}
		c.Next()
	}
}

func (app *App) getLimiter(key string) *rate.Limiter {
	app.limiterMu.RLock()
	entry, ok := app.limiters[key]
	app.limiterMu.RUnlock()
	if ok {
		app.limiterMu.Lock()
		if entry, ok = app.limiters[key]; ok {
			entry.lastAccess = time.Now()
		}
		app.limiterMu.Unlock()
		return entry.limiter
	}

	app.limiterMu.Lock()
	defer app.limiterMu.Unlock()
	if entry, ok = app.limiters[key]; ok {
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	if key == "" || key == "::1" {
		util.LogWarn("Rate limiter key is empty or loopback: %q", key)
	}
	rps := app.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), app.RateLimitBurst)
	app.limiters[key] = &rateLimiterEntry{limiter: lim, lastAccess: time.Now()}
	return lim
}

func (app *App) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !app.getLimiter(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}

func (app *App) cleanupStaleLimiters() {
	app.limiterMu.Lock()
	defer app.limiterMu.Unlock()

	cutoff := time.Now().Add(-app.RateLimiterTTL)
	removed := 0
	for key, entry := range app.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(app.limiters, key)
			removed++
		}
	}

	if removed > 0 {
		util.LogInfo("Cleaned up %d stale rate limiter%s", removed, util.Plural(removed))
	}
}

// ApplyCacheHeaders keeps every API response uncacheable. Game state is
// per-session and changes with each guess.
func (app *App) ApplyCacheHeaders(c *gin.Context) {
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
