package metrics

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestFlusher_EmptyScheduleIsNoop(t *testing.T) {
	m := NewHitMetrics(testConfig(), prometheus.NewRegistry())
	f := NewFlusher(m, "", slog.Default())

	if err := f.Start(context.Background()); err != nil {
		t.Fatalf("Start with empty schedule: %v", err)
	}
	f.Stop()
}

func TestFlusher_InvalidSchedule(t *testing.T) {
	m := NewHitMetrics(testConfig(), prometheus.NewRegistry())
	f := NewFlusher(m, "not a cron line", slog.Default())

	if err := f.Start(context.Background()); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestFlusher_StartStop(t *testing.T) {
	m := NewHitMetrics(testConfig(), prometheus.NewRegistry())
	f := NewFlusher(m, "* * * * *", slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := f.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.Start(ctx); err == nil {
		t.Error("second Start should fail while running")
	}
	f.Stop()
	f.Stop() // idempotent
}

func TestFlusher_FlushLogsTotals(t *testing.T) {
	m := NewHitMetrics(testConfig(), prometheus.NewRegistry())
	m.Record("health", 200, 0)
	m.Record("not_found", 404, 0)
	m.Record("not_found", 404, 0)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	f := NewFlusher(m, "* * * * *", logger)

	f.flush()

	out := buf.String()
	for _, want := range []string{`"success":1`, `"failure":2`, `"total":3`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("flush log missing %s:\n%s", want, out)
		}
	}
}
