// Package sqlite contains SQLite implementations of the repository ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/hive/internal/core/comms"
)

// timeLayout is the fixed-width UTC storage format for timestamps. Fixed
// width means lexical comparison in SQL equals chronological comparison,
// which the unread and caught-up queries depend on.
const timeLayout = "2006-01-02 15:04:05.000000000-07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// displayTime converts a stored timestamp to RFC3339 for port records.
func displayTime(stored string) string {
	t, err := time.Parse(timeLayout, stored)
	if err != nil {
		return stored
	}
	return t.UTC().Format(time.RFC3339)
}

func displayNullTime(stored sql.NullString) string {
	if !stored.Valid {
		return ""
	}
	return displayTime(stored.String)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// nextSequence atomically increments and returns the named counter. The
// caller's transaction scopes the increment, so a rolled-back insert also
// rolls back the counter. There is no read-then-write fallback; any failure
// surfaces as an allocation error.
func nextSequence(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var value int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO id_sequences (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1
		 RETURNING value`,
		name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %v: %w", name, err, comms.ErrAllocation)
	}
	return value, nil
}
