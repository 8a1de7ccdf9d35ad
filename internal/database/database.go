// Package database provides database access for the request journal
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(driver, dsn string) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Migrate creates all required tables
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id UUID PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		operation VARCHAR(100) NOT NULL,
		method VARCHAR(10) NOT NULL,
		endpoint TEXT NOT NULL,
		scheme VARCHAR(20) NOT NULL,
		conversation_id VARCHAR(255),
		status VARCHAR(20) NOT NULL,
		error_code VARCHAR(50),
		error_message TEXT,
		http_status INTEGER NOT NULL DEFAULT 0,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		data JSONB
	);

	CREATE INDEX IF NOT EXISTS idx_journal_timestamp ON journal_entries(timestamp);
	CREATE INDEX IF NOT EXISTS idx_journal_operation ON journal_entries(operation);
	CREATE INDEX IF NOT EXISTS idx_journal_conversation ON journal_entries(conversation_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Reset drops all tables (for testing)
func (db *DB) Reset() error {
	_, err := db.Exec(`DROP TABLE IF EXISTS journal_entries CASCADE;`)
	return err
}

