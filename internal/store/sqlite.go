package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/migrations"
)

// DB wraps the local sqlite handle used for the key-value session storage.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (and creates, if absent) the sqlite database at
// cfg.DBPath and verifies the connection.
func NewConnectSQLite(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &DB{DB: db, logger: logger}, nil
}

// Migrate runs pending goose migrations against the local database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// NewSessionStorage initialises the local storage layer: opens the sqlite
// file, runs migrations, and returns the session repository bound to it.
func NewSessionStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) (SessionRepository, error) {
	logger.Info().Str("path", cfg.DBPath).Msg("opening local session storage")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSessionRepository(db.DB, logger), nil
}
