// Package redis implements a document backend on Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	goredis "github.com/go-redis/redis/v8"

	"tagcrm/internal/docstore/core"
)

// DefaultPrefix namespaces document keys.
const DefaultPrefix = "tagcrm:doc:"

// Config holds connection parameters.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store keeps each document under Prefix + name.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// ConfigFromEnv reads TAGCRM_REDIS_ADDR, TAGCRM_REDIS_PASSWORD,
// TAGCRM_REDIS_DB and TAGCRM_REDIS_PREFIX.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:     os.Getenv("TAGCRM_REDIS_ADDR"),
		Password: os.Getenv("TAGCRM_REDIS_PASSWORD"),
		Prefix:   os.Getenv("TAGCRM_REDIS_PREFIX"),
	}
	if db := os.Getenv("TAGCRM_REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.DB = n
		}
	}
	return cfg
}

// Driver returns the backend driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverRedis }

// Read returns the stored document.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	clean, err := core.CleanName(name)
	if err != nil {
		return nil, err
	}
	b, err := s.client.Get(ctx, s.prefix+clean).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("document %s: %w", clean, core.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", clean, err)
	}
	return b, nil
}

// Write replaces the document.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	clean, err := core.CleanName(name)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+clean, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", clean, err)
	}
	return nil
}

// Close releases the client.
func (s *Store) Close() error { return s.client.Close() }
