// Package metrics collects Prometheus metrics for the HTTP surface and the
// game itself.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	guessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wurdle_guesses_total",
			Help: "Total number of guess submissions by result",
		},
		[]string{"result"},
	)

	outcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wurdle_outcomes_total",
			Help: "Total number of finished sessions by result",
		},
		[]string{"result"},
	)

	dailyPinConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wurdle_daily_pin_conflicts_total",
			Help: "Daily-word pin writes that lost the first-access race and adopted the winner",
		},
	)

	degradedSelections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wurdle_degraded_selections_total",
			Help: "Daily-word selections served without a durable pin",
		},
	)

	outcomeRetryQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wurdle_outcome_retry_queue",
			Help: "Outcome records waiting for a background retry",
		},
	)
)

// Middleware records request count, duration and in-flight gauge per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// RecordGuess counts one guess submission. Result is one of "accepted",
// "won", "lost" or "rejected".
func RecordGuess(result string) {
	guessesTotal.WithLabelValues(result).Inc()
}

// RecordOutcome counts one terminal transition.
func RecordOutcome(won bool) {
	result := "lost"
	if won {
		result = "won"
	}
	outcomesTotal.WithLabelValues(result).Inc()
}

// RecordPinConflict counts a lost daily-word pin race.
func RecordPinConflict() {
	dailyPinConflicts.Inc()
}

// RecordDegradedSelection counts a daily word served without a durable pin.
func RecordDegradedSelection() {
	degradedSelections.Inc()
}

// SetOutcomeRetryQueue reports the retry queue depth.
func SetOutcomeRetryQueue(n int) {
	outcomeRetryQueue.Set(float64(n))
}
