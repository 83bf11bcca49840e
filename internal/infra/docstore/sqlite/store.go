// Package sqlite implements a document backend on an embedded SQLite file.
// Each document is one row of the documents table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"tagcrm/internal/docstore/core"
)

// DefaultPath is used when NewStore receives an empty path.
const DefaultPath = "tagcrm.db"

// Store persists documents as rows keyed by name.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the sqlite file at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer connection avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Driver returns the backend driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Read returns the stored payload.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	clean, err := core.CleanName(name)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE name = ?`, clean).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", clean, core.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", clean, err)
	}
	return payload, nil
}

// Write upserts the payload.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	clean, err := core.CleanName(name)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(name, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		clean, data); err != nil {
		return fmt.Errorf("upsert %s: %w", clean, err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
