package repository

import (
	"context"
	"errors"
	"sort"

	"tagcrm/internal/docstore"
	"tagcrm/pkg/domain"
)

// loadList reads a collection and degrades any failure to an empty slice.
func loadList[T any](ctx context.Context, b base, c domain.Collection) []T {
	items, _ := loadAll[T](ctx, b, c)
	return items
}

// loadAll reads a collection, logging by status. A missing document is not
// an error; a corrupt or unreadable one is returned alongside empty rows.
func loadAll[T any](ctx context.Context, b base, c domain.Collection) ([]T, error) {
	items, status, err := docstore.Load[T](ctx, b.store, string(c))
	switch status {
	case docstore.StatusMissing:
		b.log.Debug("collection missing", "collection", string(c))
	case docstore.StatusCorrupt, docstore.StatusFailed:
		b.log.Warn("collection unreadable; treating as empty", "collection", string(c), "status", status.String(), "error", err)
		return items, err
	}
	return items, nil
}

// identified is satisfied by pointer-to-record types carrying an integer id.
type identified[T any] interface {
	*T
	GetID() int
	SetID(int)
}

// nextID returns max(existing id)+1, starting at 1.
func nextID[T any, P identified[T]](items []T) int {
	highest := 0
	for i := range items {
		if id := P(&items[i]).GetID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// upsert replaces the record with rec's id (removing it and appending rec) or,
// for id <= 0, assigns the next id and appends. The result is sorted by id.
// Updating an id that is not present returns NotFoundError.
func upsert[T any, P identified[T]](c domain.Collection, items []T, rec *T) ([]T, error) {
	p := P(rec)
	if p.GetID() > 0 {
		idx := -1
		for i := range items {
			if P(&items[i]).GetID() == p.GetID() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, NotFoundError{Collection: c, ID: p.GetID()}
		}
		items = append(items[:idx], items[idx+1:]...)
	} else {
		p.SetID(nextID[T, P](items))
	}
	items = append(items, *rec)
	sort.SliceStable(items, func(i, j int) bool {
		return P(&items[i]).GetID() < P(&items[j]).GetID()
	})
	return items, nil
}

// put runs upsert under the collection's write gate and persists the result.
func put[T any, P identified[T]](ctx context.Context, b base, c domain.Collection, rec *T) error {
	err := docstore.Mutate(ctx, b.store, string(c), func(items []T) ([]T, error) {
		return upsert[T, P](c, items, rec)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		b.log.Warn("save failed", "collection", string(c), "id", P(rec).GetID(), "error", err)
	}
	return err
}
