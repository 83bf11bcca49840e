// Package docstore loads and saves whole entity collections as JSON
// documents. It wraps the infra-backed drivers behind core.Backend and is the
// only package allowed to import them.
package docstore

import "tagcrm/internal/docstore/core"

type (
	// Driver identifies a document backend driver.
	Driver = core.Driver
	// Backend is the interface for document storage drivers.
	Backend = core.Backend
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverMemory     = core.DriverMemory
	DriverS3         = core.DriverS3
	DriverSQLite     = core.DriverSQLite
	DriverPostgres   = core.DriverPostgres
	DriverRedis      = core.DriverRedis
)

var (
	// ErrNotExist reports a missing document.
	ErrNotExist = core.ErrNotExist
	// ErrInvalidName reports a blank or escaping document name.
	ErrInvalidName = core.ErrInvalidName
)
