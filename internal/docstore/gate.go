package docstore

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"tagcrm/internal/docstore/core"
)

// Gate serializes writers per document. At most one Do call for a given
// document name runs at a time; different documents proceed independently.
// Readers are not gated and may observe the document before or after a
// concurrent write.
type Gate struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{locks: make(map[string]*semaphore.Weighted)}
}

func (g *Gate) lockFor(name string) *semaphore.Weighted {
	if clean, err := core.CleanName(name); err == nil {
		name = clean
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	sem, ok := g.locks[name]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.locks[name] = sem
	}
	return sem
}

// Do runs fn while holding the named document's lock. Waiters acquire in
// arrival order. If ctx ends while waiting, fn is not run and ctx.Err() is
// returned. The lock is released when fn returns or panics.
func (g *Gate) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	sem := g.lockFor(name)
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)
	return fn(ctx)
}
