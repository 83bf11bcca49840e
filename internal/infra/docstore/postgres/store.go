// Package postgres implements a document backend on PostgreSQL. Each
// document is a JSONB row of the documents table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"tagcrm/internal/docstore/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/tagcrm?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const ensureTableDDL = `CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const selectDocument = `SELECT payload FROM documents WHERE name = $1`

const upsertDocument = `INSERT INTO documents (name, payload, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

// Store persists documents to Postgres.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres-backed store using dsn (falls back to defaultDSN)
// and ensures the documents table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newWithDB(ctx, db)
}

func newWithDB(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, ensureTableDDL); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &Store{db: db}, nil
}

// Driver returns the backend driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverPostgres }

// Read returns the stored document.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	clean, err := core.CleanName(name)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.QueryRowContext(ctx, selectDocument, clean).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", clean, core.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", clean, err)
	}
	return payload, nil
}

// Write upserts the document. JSONB normalises whitespace, so the stored
// form is not byte-identical to data.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	clean, err := core.CleanName(name)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertDocument, clean, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", clean, err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }
