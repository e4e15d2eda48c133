// Package backend selects and constructs a store implementation from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"expensed/internal/store"
	"expensed/internal/store/bolt"
	"expensed/internal/store/memory"
	"expensed/internal/store/postgres"
	"expensed/internal/store/sqlite"
)

// Type identifies a storage backend.
type Type string

const (
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
	BoltBackend     Type = "bolt"
	MemoryBackend   Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, PostgresBackend, BoltBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLiteBackend, PostgresBackend, BoltBackend, MemoryBackend}
}

// Config holds what each backend needs to open its store.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	PostgresURL string

	// Bolt specific
	BoltPath string
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case PostgresBackend:
		if c.PostgresURL == "" {
			return fmt.Errorf("PostgreSQL connection URL is required for postgres backend")
		}
	case BoltBackend:
		if c.BoltPath == "" {
			return fmt.Errorf("bolt database path is required for bolt backend")
		}
	case MemoryBackend:
		// Nothing to validate.
	}

	return nil
}

// Open constructs the store described by config. The caller owns the
// returned store and must Close it.
func Open(logger *slog.Logger, config Config) (store.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		s, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return s, nil

	case PostgresBackend:
		s, err := postgres.New(config.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		logger.Info("Initialized PostgreSQL backend")
		return s, nil

	case BoltBackend:
		s, err := bolt.New(config.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("initialize bolt backend: %w", err)
		}
		logger.Info("Initialized Bolt backend", "db_path", config.BoltPath)
		return s, nil

	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
