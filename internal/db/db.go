// Package db provides PostgreSQL-backed storage for interview sessions and
// archived resume uploads.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables and indexes the engine needs. Statements are
// idempotent so repeated runs are safe.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id     TEXT PRIMARY KEY,
			identity_ref   TEXT,
			resume_text    TEXT NOT NULL,
			questions      TEXT[] NOT NULL,
			responses      TEXT[] NOT NULL DEFAULT '{}',
			feedbacks      TEXT[] NOT NULL DEFAULT '{}',
			question_index INT NOT NULL DEFAULT 0,
			active         BOOLEAN NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_identity
			ON sessions (identity_ref, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS resume_files (
			id         UUID PRIMARY KEY,
			session_id TEXT NOT NULL,
			filename   TEXT NOT NULL,
			content    BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
