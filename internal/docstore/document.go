package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"tagcrm/internal/docstore/core"
)

// LoadStatus tags why Load returned what it did. Callers that only want the
// rows can ignore it; an empty slice is always safe to use.
type LoadStatus int

const (
	// StatusLoaded means the document was read and decoded.
	StatusLoaded LoadStatus = iota
	// StatusMissing means the document does not exist yet.
	StatusMissing
	// StatusCorrupt means the document exists but could not be decoded.
	StatusCorrupt
	// StatusFailed means the backend could not be read.
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusCorrupt:
		return "corrupt"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrCorrupt wraps decode failures.
var ErrCorrupt = errors.New("docstore: corrupt document")

// Store couples a backend with the per-document write gate and a metrics
// recorder. It holds no document cache: every Load reads the backend.
type Store struct {
	backend Backend
	gate    *Gate
	metrics MetricsRecorder
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics sets the recorder observing loads and saves.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New wraps backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, gate: NewGate(), metrics: noopMetrics{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the wrapped driver.
func (s *Store) Backend() Backend { return s.backend }

// Driver returns the wrapped driver identifier.
func (s *Store) Driver() Driver { return s.backend.Driver() }

// Gate returns the write serializer shared by all writers of this store.
func (s *Store) Gate() *Gate { return s.gate }

// Close releases the backend when it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// isolate json usage to allow fault injection in tests.
var (
	jsonMarshal   = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	jsonUnmarshal = json.Unmarshal
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the named document as a list of T. It never returns a nil
// slice. A missing document is StatusMissing with a nil error; undecodable
// content is StatusCorrupt and unreadable storage StatusFailed, both with
// the cause in err.
func Load[T any](ctx context.Context, s *Store, name string) ([]T, LoadStatus, error) {
	start := time.Now()
	items, status, err := load[T](ctx, s.backend, name)
	s.metrics.Observe(ctx, "load", name, status.String(), time.Since(start))
	return items, status, err
}

func load[T any](ctx context.Context, backend Backend, name string) ([]T, LoadStatus, error) {
	raw, err := backend.Read(ctx, name)
	if errors.Is(err, core.ErrNotExist) {
		return []T{}, StatusMissing, nil
	}
	if err != nil {
		return []T{}, StatusFailed, fmt.Errorf("read %s: %w", name, err)
	}
	items, err := decode[T](raw)
	if err != nil {
		return []T{}, StatusCorrupt, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return items, StatusLoaded, nil
}

func decode[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := jsonUnmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the named document with items, encoded as an indented JSON
// array. A nil slice is written as [].
func Save[T any](ctx context.Context, s *Store, name string, items []T) error {
	start := time.Now()
	err := save(ctx, s.backend, name, items)
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.Observe(ctx, "save", name, result, time.Since(start))
	return err
}

func save[T any](ctx context.Context, backend Backend, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := jsonMarshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := backend.Write(ctx, name, b); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Mutate runs a read-modify-write of the named document while holding its
// write gate. fn receives the current rows and returns the rows to persist.
// A corrupt or unreadable document is never overwritten: Mutate returns the
// load error without calling fn.
func Mutate[T any](ctx context.Context, s *Store, name string, fn func([]T) ([]T, error)) error {
	return s.gate.Do(ctx, name, func(ctx context.Context) error {
		items, status, err := Load[T](ctx, s, name)
		if status == StatusCorrupt || status == StatusFailed {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}
		return Save(ctx, s, name, next)
	})
}
