package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Flusher periodically logs exact hit totals on a cron schedule, giving
// operators a heartbeat line in the logs even when no scrape target is
// attached.
type Flusher struct {
	metrics  *HitMetrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewFlusher creates a flusher for the given metrics. The schedule is a
// standard five-field cron expression; an empty schedule makes Start a
// no-op.
func NewFlusher(m *HitMetrics, schedule string, logger *slog.Logger) *Flusher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flusher{
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "metrics.flusher"),
	}
}

// Start begins the scheduled flushing and returns immediately. The cron
// stops when the context is cancelled or Stop is called.
func (f *Flusher) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.schedule == "" {
		f.logger.Debug("flush schedule not configured, skipping stats flusher")
		return nil
	}
	if f.running {
		return fmt.Errorf("flusher already running")
	}

	if _, err := cron.ParseStandard(f.schedule); err != nil {
		return fmt.Errorf("invalid flush schedule %q: %w", f.schedule, err)
	}

	if _, err := f.cron.AddFunc(f.schedule, f.flush); err != nil {
		return fmt.Errorf("failed to schedule stats flush: %w", err)
	}

	f.cron.Start()
	f.running = true
	f.logger.Info("stats flusher started", "schedule", f.schedule)

	go func() {
		<-ctx.Done()
		f.Stop()
	}()

	return nil
}

// Stop halts the schedule. Safe to call more than once.
func (f *Flusher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}
	f.cron.Stop()
	f.running = false
	f.logger.Info("stats flusher stopped")
}

func (f *Flusher) flush() {
	success, failure := f.metrics.Totals()
	f.logger.Info("hit totals",
		"success", success,
		"failure", failure,
		"total", success+failure,
	)
}
