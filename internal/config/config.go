// Package config assembles runtime settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"tagcrm/internal/docstore"
)

// DefaultServiceName labels log entries when TAGCRM_SERVICE_NAME is unset.
const DefaultServiceName = "tagcrm"

// Config is the resolved runtime configuration.
type Config struct {
	Docstore    docstore.Config
	LogLevel    string
	LogFormat   string
	ServiceName string
}

// Load reads the given .env files (default ".env") into the process
// environment without overriding variables already set, then resolves the
// configuration. Missing .env files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv resolves the configuration from the current process environment.
func FromEnv() Config {
	return Config{
		Docstore:    docstore.ConfigFromEnv(),
		LogLevel:    getenv("TAGCRM_LOG_LEVEL", "info"),
		LogFormat:   getenv("TAGCRM_LOG_FORMAT", "json"),
		ServiceName: getenv("TAGCRM_SERVICE_NAME", DefaultServiceName),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
