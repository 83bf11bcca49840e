// Package repository exposes the contact, member, note/alert and lookup views
// over the document store. Public read methods degrade to empty results and
// Save reports failure as false; every swallowed failure is logged.
package repository

import (
	"context"
	"time"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

// Logger is the structured logging surface repositories write to. args are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards everything. It is the default when no logger is set.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// MetricsRecorder observes repository calls. It shares the docstore contract
// so one Prometheus recorder can serve both layers.
type MetricsRecorder = docstore.MetricsRecorder

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, string, string, time.Duration) {}

// Option configures a repository.
type Option func(*base)

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(b *base) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMetrics records per-call latency and outcome.
func WithMetrics(m MetricsRecorder) Option {
	return func(b *base) {
		if m != nil {
			b.metrics = m
		}
	}
}

// base carries what every repository shares.
type base struct {
	store   *docstore.Store
	log     Logger
	metrics MetricsRecorder
}

func newBase(store *docstore.Store, opts []Option) base {
	b := base{store: store, log: NopLogger{}, metrics: noopMetrics{}}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// observe reports a call on collection c. ok=false marks a degraded result.
func (b base) observe(ctx context.Context, operation string, c domain.Collection, start time.Time, ok bool) {
	status := "ok"
	if !ok {
		status = "degraded"
	}
	b.metrics.Observe(ctx, operation, string(c), status, time.Since(start))
}
