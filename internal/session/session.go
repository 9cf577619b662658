// Package session ties anonymous cookie identities to in-memory game
// sessions and handles their expiry.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wurdle/internal/constants"
	"wurdle/internal/game"
	"wurdle/internal/util"
)

// GetOrCreateID returns the caller's session id, minting a cookie when one
// is missing or malformed.
func GetOrCreateID(c *gin.Context, maxAge time.Duration, secure bool) string {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(constants.SessionCookieName, sessionID, int(maxAge.Seconds()), "/", "", secure, true)
		util.LogInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// Registry is the in-memory session store, guarded for concurrent requests.
// Sessions are keyed by (player id, list id): each word list carries its own
// board, so switching lists never replaces another list's game. Access times
// are written only here, under the registry lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*game.Session),
		ttl:      ttl,
	}
}

func registryKey(playerID, listID string) string {
	return playerID + "/" + listID
}

// Get returns the player's session for a list and touches its access time.
func (r *Registry) Get(playerID, listID string) (*game.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, exists := r.sessions[registryKey(playerID, listID)]
	if !exists {
		return nil, false
	}
	sess.LastAccessTime = time.Now()
	return sess, true
}

func (r *Registry) Put(sess *game.Session) {
	r.mu.Lock()
	r.sessions[registryKey(sess.ID, sess.ListID)] = sess
	sess.LastAccessTime = time.Now()
	r.mu.Unlock()
}

func (r *Registry) Delete(playerID, listID string) {
	r.mu.Lock()
	delete(r.sessions, registryKey(playerID, listID))
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupExpired drops sessions idle past the TTL and returns the count.
func (r *Registry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	expired := 0
	for key, sess := range r.sessions {
		if now.Sub(sess.LastAccessTime) > r.ttl {
			delete(r.sessions, key)
			expired++
		}
	}

	if expired > 0 {
		util.LogInfo("Cleaned up %d expired session%s", expired, util.Plural(expired))
	}
	return expired
}

// StartCleanup runs CleanupExpired on a ticker.
func (r *Registry) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			r.CleanupExpired()
		}
	}()
	util.LogInfo("Started session cleanup goroutine")
}
