package docstore

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderCountsLoadsAndSaves(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	s := NewMemory(WithMetrics(rec))
	ctx := context.Background()
	_, _, _ = Load[row](ctx, s, "rows.json")
	if err := Save(ctx, s, "rows.json", []row{{ID: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, _, _ = Load[row](ctx, s, "rows.json")

	if got := testutil.ToFloat64(rec.operations.WithLabelValues("load", "rows.json", "missing")); got != 1 {
		t.Fatalf("missing loads = %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("load", "rows.json", "loaded")); got != 1 {
		t.Fatalf("loaded loads = %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("save", "rows.json", "ok")); got != 1 {
		t.Fatalf("saves = %v", got)
	}
	if n := testutil.CollectAndCount(rec.latency); n != 2 {
		t.Fatalf("expected latency series for load and save, got %d", n)
	}
}

func TestPrometheusRecorderReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.operations != second.operations {
		t.Fatalf("expected shared counter vec")
	}
}

func TestWithMetricsIgnoresNil(t *testing.T) {
	s := NewMemory(WithMetrics(nil))
	if _, ok := s.metrics.(noopMetrics); !ok {
		t.Fatalf("expected noop metrics, got %T", s.metrics)
	}
}
