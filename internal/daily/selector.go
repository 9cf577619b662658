// Package daily resolves the one secret word per (day, word-list) pair.
package daily

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"wurdle/internal/catalog"
	"wurdle/internal/metrics"
	"wurdle/internal/store"
	"wurdle/internal/util"
)

// UnknownListError reports a list id the catalog does not carry.
type UnknownListError struct {
	ListID string
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown word-list %q", e.ListID)
}

// Selector picks and pins daily words. It degrades to uncommitted
// request-scoped words when the store is unreachable so the game stays
// playable.
type Selector struct {
	store   store.DailyWordStore
	catalog *catalog.Catalog
}

func NewSelector(st store.DailyWordStore, cat *catalog.Catalog) *Selector {
	return &Selector{store: st, catalog: cat}
}

// WordFor returns the secret for (day, listID). Committed is false when the
// word could not be durably pinned; such a word is valid for the requesting
// session only and breaks the same-word-for-everyone guarantee, which is why
// the degradation is logged apart from ordinary errors.
func (s *Selector) WordFor(ctx context.Context, day, listID string) (word string, committed bool, err error) {
	list, ok := s.catalog.List(listID)
	if !ok {
		return "", false, &UnknownListError{ListID: listID}
	}

	reqID := util.RequestID(ctx)

	pinned, err := s.store.GetDailyWord(ctx, day, listID)
	if err != nil {
		return s.degrade(reqID, day, listID, list, err), false, nil
	}
	if pinned != "" {
		return pinned, true, nil
	}

	candidate := randomWord(ctx, list)
	pinned, err = s.store.PinDailyWord(ctx, day, listID, candidate)
	if err != nil {
		return s.degrade(reqID, day, listID, list, err), false, nil
	}
	if pinned != candidate {
		// Lost the first-access race; the winner's word stands.
		metrics.RecordPinConflict()
		util.LogInfo("[request_id=%v] Daily word pin for (%s, %s) lost race, adopted %q", reqID, day, listID, pinned)
	}
	return pinned, true, nil
}

func (s *Selector) degrade(reqID, day, listID string, list *catalog.WordList, cause error) string {
	metrics.RecordDegradedSelection()
	word := randomWord(context.Background(), list)
	util.LogWarn("[request_id=%v] Daily word store degraded for (%s, %s), serving uncommitted word: %v",
		reqID, day, listID, cause)
	return word
}

func randomWord(ctx context.Context, list *catalog.WordList) string {
	reqID := util.RequestID(ctx)

	select {
	case <-ctx.Done():
		util.LogWarn("[request_id=%v] Random word selection cancelled: %v", reqID, ctx.Err())
		return list.EntryAt(0).Word
	default:
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(list.Len())))
	if err != nil {
		util.LogWarn("[request_id=%v] Error generating random number: %v, using fallback", reqID, err)
		return list.EntryAt(0).Word
	}
	return list.EntryAt(int(n.Int64())).Word
}
