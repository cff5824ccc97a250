package cronjob

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
	"github.com/robfig/cron/v3"
)

// Scheduler periodically logs gateway and cache counters.
type Scheduler struct {
	c      *cron.Cron
	report func() llm.MetricsSnapshot
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		c:      cron.New(cron.WithSeconds()),
		report: func() llm.MetricsSnapshot { return llm.GetMetrics().Snapshot() },
	}
}

// Start registers the metrics report under spec (six fields, seconds first)
// and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	_, err := s.c.AddFunc(spec, s.runReport)
	if err != nil {
		return fmt.Errorf("create cron job: %w", err)
	}

	slog.Info("cron scheduler started", "job", "metrics_report", "spec", spec)
	s.c.Start()
	return nil
}

// Stop halts the loop and waits for a running report to finish.
func (s *Scheduler) Stop() context.Context {
	return s.c.Stop()
}

func (s *Scheduler) runReport() {
	m := s.report()
	slog.Info("metrics report",
		"completion_calls", m.CompletionCalls,
		"completion_errors", m.CompletionErrors,
		"vision_calls", m.VisionCalls,
		"avg_latency_ms", m.AvgLatencyMs,
		"error_rate_pct", m.ErrorRatePct,
		"cache_hits", m.CacheHits,
		"cache_misses", m.CacheMisses,
	)
}
