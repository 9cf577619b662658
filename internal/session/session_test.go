package session

import (
	"testing"
	"time"

	"wurdle/internal/game"
)

func TestRegistryGetPut(t *testing.T) {
	r := NewRegistry(time.Hour)

	if _, ok := r.Get("missing", "classic"); ok {
		t.Error("Get on empty registry must miss")
	}

	sess := game.NewSession("sess1", "classic", "2026-08-26", "CRANE", true)
	r.Put(sess)

	got, ok := r.Get("sess1", "classic")
	if !ok || got != sess {
		t.Error("Get must return the stored session")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Delete("sess1", "classic")
	if _, ok := r.Get("sess1", "classic"); ok {
		t.Error("deleted session must not be returned")
	}
}

func TestRegistryKeysPerList(t *testing.T) {
	r := NewRegistry(time.Hour)

	classic := game.NewSession("sess1", "classic", "2026-08-26", "CRANE", true)
	animals := game.NewSession("sess1", "animals", "2026-08-26", "ROBOT", true)
	r.Put(classic)
	r.Put(animals)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (one session per list)", r.Len())
	}
	got, ok := r.Get("sess1", "classic")
	if !ok || got != classic {
		t.Error("storing a second list must not replace the first list's session")
	}
	got, ok = r.Get("sess1", "animals")
	if !ok || got != animals {
		t.Error("each list keeps its own session")
	}
}

func TestRegistryGetTouchesAccessTime(t *testing.T) {
	r := NewRegistry(time.Hour)
	sess := game.NewSession("sess1", "classic", "2026-08-26", "CRANE", true)
	sess.LastAccessTime = time.Now().Add(-time.Hour)
	r.Put(sess)

	before := time.Now()
	if _, ok := r.Get("sess1", "classic"); !ok {
		t.Fatal("expected session")
	}
	if sess.LastAccessTime.Before(before) {
		t.Error("Get must refresh the last access time")
	}
}

func TestRegistryCleanupExpired(t *testing.T) {
	r := NewRegistry(time.Minute)

	stale := game.NewSession("stale", "classic", "2026-08-26", "CRANE", true)
	fresh := game.NewSession("fresh", "classic", "2026-08-26", "CRANE", true)
	r.Put(stale)
	r.Put(fresh)
	// Backdate after Put, which stamps the access time.
	r.mu.Lock()
	stale.LastAccessTime = time.Now().Add(-2 * time.Minute)
	r.mu.Unlock()

	if expired := r.CleanupExpired(); expired != 1 {
		t.Errorf("CleanupExpired = %d, want 1", expired)
	}
	if _, ok := r.Get("stale", "classic"); ok {
		t.Error("stale session must be evicted")
	}
	if _, ok := r.Get("fresh", "classic"); !ok {
		t.Error("fresh session must survive cleanup")
	}
}
