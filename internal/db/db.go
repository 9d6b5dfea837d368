// Package db owns the shared SQLite connection and the authoritative
// schema. The database is the only shared mutable resource between agent
// processes; there is no broker and no in-memory session state.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hive/internal/config"
)

var (
	conn        *sql.DB
	initialized bool
)

// GetDB returns the database connection, initializing the schema on first
// use. The path comes from config (HIVE_DB_PATH overrides).
func GetDB() (*sql.DB, error) {
	if conn != nil {
		return conn, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return openAt(cfg.DBPath)
}

func openAt(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Busy timeout keeps concurrent agent processes retrying briefly at the
	// driver level instead of surfacing SQLITE_BUSY on every collision.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	conn = db

	if !initialized {
		initialized = true
		if err := InitSchema(db); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return conn, nil
}

// InitSchema applies the authoritative schema. All statements are
// idempotent (IF NOT EXISTS), so this is safe on every startup.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(GetSchemaSQL()); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the shared connection.
func Close() error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}
