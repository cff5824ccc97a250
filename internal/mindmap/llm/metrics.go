package llm

import (
	"sync/atomic"
	"time"
)

// Metrics tracks gateway call metrics
type Metrics struct {
	completionCalls   int64
	completionErrors  int64
	completionLatency int64 // total nanoseconds
	visionCalls       int64
	cacheHits         int64
	cacheMisses       int64
}

var globalMetrics = &Metrics{}

// MetricsSnapshot is the JSON view served on /api/metrics.
type MetricsSnapshot struct {
	CompletionCalls  int64   `json:"completion_calls"`
	CompletionErrors int64   `json:"completion_errors"`
	VisionCalls      int64   `json:"vision_calls"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	ErrorRatePct     float64 `json:"error_rate_pct"`
	CacheHits        int64   `json:"cache_hits"`
	CacheMisses      int64   `json:"cache_misses"`
}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		completionCalls:   atomic.LoadInt64(&globalMetrics.completionCalls),
		completionErrors:  atomic.LoadInt64(&globalMetrics.completionErrors),
		completionLatency: atomic.LoadInt64(&globalMetrics.completionLatency),
		visionCalls:       atomic.LoadInt64(&globalMetrics.visionCalls),
		cacheHits:         atomic.LoadInt64(&globalMetrics.cacheHits),
		cacheMisses:       atomic.LoadInt64(&globalMetrics.cacheMisses),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.completionCalls, 0)
	atomic.StoreInt64(&globalMetrics.completionErrors, 0)
	atomic.StoreInt64(&globalMetrics.completionLatency, 0)
	atomic.StoreInt64(&globalMetrics.visionCalls, 0)
	atomic.StoreInt64(&globalMetrics.cacheHits, 0)
	atomic.StoreInt64(&globalMetrics.cacheMisses, 0)
}

func recordCompletion(duration time.Duration, withImage bool, err error) {
	atomic.AddInt64(&globalMetrics.completionCalls, 1)
	atomic.AddInt64(&globalMetrics.completionLatency, duration.Nanoseconds())
	if withImage {
		atomic.AddInt64(&globalMetrics.visionCalls, 1)
	}
	if err != nil {
		atomic.AddInt64(&globalMetrics.completionErrors, 1)
	}
}

func recordCacheHit()  { atomic.AddInt64(&globalMetrics.cacheHits, 1) }
func recordCacheMiss() { atomic.AddInt64(&globalMetrics.cacheMisses, 1) }

// AverageLatency returns the average completion latency in milliseconds
func (m Metrics) AverageLatency() float64 {
	if m.completionCalls == 0 {
		return 0
	}
	return float64(m.completionLatency) / float64(m.completionCalls) / 1e6
}

// ErrorRate returns the error rate as a percentage
func (m Metrics) ErrorRate() float64 {
	if m.completionCalls == 0 {
		return 0
	}
	return float64(m.completionErrors) / float64(m.completionCalls) * 100
}

func (m Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		CompletionCalls:  m.completionCalls,
		CompletionErrors: m.completionErrors,
		VisionCalls:      m.visionCalls,
		AvgLatencyMs:     m.AverageLatency(),
		ErrorRatePct:     m.ErrorRate(),
		CacheHits:        m.cacheHits,
		CacheMisses:      m.cacheMisses,
	}
}
