package store

import (
	"context"
	"sync"
	"time"

	"wurdle/internal/metrics"
	"wurdle/internal/util"
)

// RetryingRecorder wraps an OutcomeRecorder so that a failed write on a
// terminal transition never surfaces to the player. Failures are queued and
// retried on a ticker; losing a result record silently would corrupt stats,
// so the queue holds them until the store recovers.
type RetryingRecorder struct {
	inner OutcomeRecorder

	mu      sync.Mutex
	pending []Outcome
}

func NewRetryingRecorder(inner OutcomeRecorder) *RetryingRecorder {
	return &RetryingRecorder{inner: inner}
}

// RecordOutcome attempts the write and queues it on failure. It only errors
// on a nil recorder misconfiguration, never on store trouble.
func (r *RetryingRecorder) RecordOutcome(ctx context.Context, outcome Outcome) error {
	if err := r.inner.RecordOutcome(ctx, outcome); err != nil {
		util.LogWarn("Outcome write failed, queued for retry (session %s, day %s): %v",
			outcome.SessionID, outcome.Day, err)
		r.enqueue(outcome)
	}
	return nil
}

func (r *RetryingRecorder) enqueue(outcome Outcome) {
	r.mu.Lock()
	r.pending = append(r.pending, outcome)
	depth := len(r.pending)
	r.mu.Unlock()
	metrics.SetOutcomeRetryQueue(depth)
}

// Flush retries every queued outcome and returns how many were written.
// Outcomes that fail again stay queued.
func (r *RetryingRecorder) Flush(ctx context.Context) int {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}

	written := 0
	var remaining []Outcome
	for _, outcome := range batch {
		if err := r.inner.RecordOutcome(ctx, outcome); err != nil {
			remaining = append(remaining, outcome)
			continue
		}
		written++
	}

	r.mu.Lock()
	r.pending = append(remaining, r.pending...)
	depth := len(r.pending)
	r.mu.Unlock()
	metrics.SetOutcomeRetryQueue(depth)

	if written > 0 {
		util.LogInfo("Flushed %d queued outcome record%s, %d remaining", written, util.Plural(written), depth)
	}
	return written
}

// PendingCount reports the retry queue depth.
func (r *RetryingRecorder) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// StartRetryLoop flushes the queue on a ticker until ctx is done.
func (r *RetryingRecorder) StartRetryLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Flush(ctx)
			}
		}
	}()
	util.LogInfo("Started outcome retry loop (every %v)", interval)
}
