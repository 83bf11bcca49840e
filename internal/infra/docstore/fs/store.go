// Package fs implements a document backend on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tagcrm/internal/docstore/core"
)

// Store maps document names to files under root. Writes go to a temp file in
// the target directory and are renamed into place, so readers observe either
// the previous or the new document, never a partial one.
type Store struct {
	root string
}

// DefaultRoot is used when New receives an empty root.
const DefaultRoot = "./wwwroot/data"

// New returns a filesystem store rooted at root. The directory is created
// lazily on first write.
func New(root string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	return &Store{root: root}
}

// Driver returns the backend driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Root returns the configured data directory.
func (s *Store) Root() string { return s.root }

func (s *Store) pathFor(name string) (string, error) {
	clean, err := core.CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Read returns the file contents; a missing file matches core.ErrNotExist.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// Write replaces the file, creating the parent directory when absent.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.pathFor(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	// atomically move into place
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
