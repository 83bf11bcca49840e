package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder observes document operations. operation is "load" or
// "save"; status is a LoadStatus string for loads and ok|error for saves.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation, document, status string, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, string, string, time.Duration) {}

// PrometheusRecorder exports document operation counts and latencies.
type PrometheusRecorder struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the docstore collectors on reg. Collectors
// already registered on reg are reused.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagcrm",
		Subsystem: "docstore",
		Name:      "operations_total",
		Help:      "Document loads and saves by document and outcome.",
	}, []string{"operation", "document", "status"})
	lat := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tagcrm",
		Subsystem: "docstore",
		Name:      "operation_seconds",
		Help:      "Latency of document loads and saves.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	var err error
	if ops, err = register(reg, ops); err != nil {
		return nil, err
	}
	if lat, err = register(reg, lat); err != nil {
		return nil, err
	}
	return &PrometheusRecorder{operations: ops, latency: lat}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusRecorder) Observe(_ context.Context, operation, document, status string, duration time.Duration) {
	r.operations.WithLabelValues(operation, document, status).Inc()
	r.latency.WithLabelValues(operation).Observe(duration.Seconds())
}
