package docstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tagcrm/internal/infra/docstore/fs"
	"tagcrm/internal/infra/docstore/memory"
	"tagcrm/internal/infra/docstore/postgres"
	"tagcrm/internal/infra/docstore/redis"
	"tagcrm/internal/infra/docstore/s3"
	"tagcrm/internal/infra/docstore/sqlite"
)

type (
	// S3Config configures the s3 driver.
	S3Config = s3.Config
	// RedisConfig configures the redis driver.
	RedisConfig = redis.Config
)

// Config selects and configures a backend driver.
type Config struct {
	Driver      Driver
	Dir         string // fs root
	SQLitePath  string
	PostgresDSN string
	S3          S3Config
	Redis       RedisConfig
}

// ConfigFromEnv reads TAGCRM_DATA_DRIVER, TAGCRM_DATA_DIR,
// TAGCRM_SQLITE_PATH, TAGCRM_POSTGRES_DSN and the driver specific
// TAGCRM_S3_* and TAGCRM_REDIS_* variables.
func ConfigFromEnv() Config {
	dir := os.Getenv("TAGCRM_DATA_DIR")
	if dir == "" {
		dir = fs.DefaultRoot
	}
	return Config{
		Driver:      Driver(strings.ToLower(strings.TrimSpace(os.Getenv("TAGCRM_DATA_DRIVER")))),
		Dir:         dir,
		SQLitePath:  os.Getenv("TAGCRM_SQLITE_PATH"),
		PostgresDSN: os.Getenv("TAGCRM_POSTGRES_DSN"),
		S3:          s3.ConfigFromEnv(),
		Redis:       redis.ConfigFromEnv(),
	}
}

// OpenBackend constructs the configured driver. An empty driver selects fs.
func OpenBackend(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return fs.New(cfg.Dir), nil
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case DriverPostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	case DriverRedis:
		return redis.New(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown docstore driver %s", cfg.Driver)
	}
}

// Open constructs the configured driver and wraps it in a Store.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, opts...), nil
}

// NewFilesystem returns a Store over a directory.
func NewFilesystem(dir string, opts ...Option) *Store { return New(fs.New(dir), opts...) }

// NewMemory returns a Store over process memory, suitable for tests.
func NewMemory(opts ...Option) *Store { return New(memory.New(), opts...) }

// NewMockS3ForTests returns a Store over an in-process fake S3 bucket.
func NewMockS3ForTests(opts ...Option) *Store { return New(s3.NewMockForTests(""), opts...) }
