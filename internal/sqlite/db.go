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

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Global pool of outsourcing resources
CREATE TABLE IF NOT EXISTS resources (
    id TEXT PRIMARY KEY,
    resource_name TEXT NOT NULL,
    company_name TEXT NOT NULL,
    total_hours INTEGER NOT NULL CHECK(total_hours >= 0),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
);

-- Resource hours assigned to projects. Hours reduce availability only once
-- committed (project in execution).
CREATE TABLE IF NOT EXISTS allocations (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    resource_id TEXT NOT NULL,
    allocated_hours INTEGER NOT NULL CHECK(allocated_hours > 0),
    hours_committed INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (resource_id) REFERENCES resources(id)
);
CREATE INDEX IF NOT EXISTS idx_project_allocations ON allocations(project_id);
CREATE INDEX IF NOT EXISTS idx_resource_allocations ON allocations(resource_id);

-- Persisted view-model mirrors, one JSON document per entity key
CREATE TABLE IF NOT EXISTS mirrors (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
