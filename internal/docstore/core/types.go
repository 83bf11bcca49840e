// Package core defines the backend contract for document storage drivers
// used internally by the docstore package.
package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Driver identifies a concrete document backend implementation.
type Driver string

const (
	// DriverFilesystem stores each document as a file under a root directory.
	DriverFilesystem Driver = "fs" // local filesystem (default)
	// DriverMemory keeps documents in process memory.
	DriverMemory Driver = "memory" // in-memory (tests)
	// DriverS3 stores documents as objects in an S3 / MinIO bucket.
	DriverS3 Driver = "s3"
	// DriverSQLite stores documents as rows of an embedded sqlite file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores documents as JSONB rows in PostgreSQL.
	DriverPostgres Driver = "postgres"
	// DriverRedis stores documents as string keys in Redis.
	DriverRedis Driver = "redis"
)

// Backend reads and writes whole documents by name. Implementations never
// merge: Write replaces the full document.
type Backend interface {
	// Read returns the document bytes. A missing document yields an error
	// matching ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the document, creating any containers it needs.
	Write(ctx context.Context, name string, data []byte) error
	// Driver returns the backend driver identifier.
	Driver() Driver
}

// ErrNotExist reports a missing document. It is fs.ErrNotExist so os errors
// from the filesystem driver match without translation.
var ErrNotExist = fs.ErrNotExist

// ErrInvalidName is returned for document names that are blank or escape the
// store root.
var ErrInvalidName = errors.New("docstore: invalid document name")

// CleanName validates a document name and returns it in slash form.
func CleanName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	slashed := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("%w: absolute %q", ErrInvalidName, name)
	}
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: traversal %q", ErrInvalidName, name)
		}
	}
	return path.Clean(slashed), nil
}
