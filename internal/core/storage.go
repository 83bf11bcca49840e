package core

import (
	"context"
	"fmt"

	"tagcrm/internal/config"
	"tagcrm/internal/docstore"
)

// OpenService opens the document store described by cfg and wraps it in a
// Service. The metrics recorder, when given through WithMetrics, observes
// the store as well as the repositories.
func OpenService(ctx context.Context, cfg config.Config, opts ...ServiceOption) (*Service, error) {
	var sc serviceConfig
	for _, opt := range opts {
		opt(&sc)
	}
	store, err := docstore.Open(ctx, cfg.Docstore, docstore.WithMetrics(sc.metrics))
	if err != nil {
		return nil, fmt.Errorf("open %s docstore: %w", driverName(cfg.Docstore.Driver), err)
	}
	if sc.logger != nil {
		sc.logger.Debug("docstore opened", "driver", string(store.Driver()))
	}
	return NewService(store, opts...), nil
}

func driverName(d docstore.Driver) string {
	if d == "" {
		return string(docstore.DriverFilesystem)
	}
	return string(d)
}
