package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would see its own empty database.
	if dataSourceName == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it is missing. It is safe to call on
// every start.
func (db *DB) RunMigrations() error {
	migration := `
-- Sticky notifications awaiting dismissal
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    level TEXT NOT NULL CHECK(level IN ('success', 'error')),
    text TEXT NOT NULL,
    sticky INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    dismissed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_pending ON messages(dismissed_at, created_at);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
