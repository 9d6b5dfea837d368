package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/hive/internal/ports/secondary"
)

// SequenceRepository implements secondary.SequenceRepository with the
// id_sequences counter table.
type SequenceRepository struct {
	db *sql.DB
}

// NewSequenceRepository creates a new SQLite sequence repository.
func NewSequenceRepository(db *sql.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next atomically increments and returns the named counter.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	value, err := nextSequence(ctx, tx, name)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence increment: %w", err)
	}
	return value, nil
}

// Current returns the counter's current value, zero if it has never been
// incremented.
func (r *SequenceRepository) Current(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE((SELECT value FROM id_sequences WHERE name = ?), 0)",
		name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return value, nil
}

// Ensure SequenceRepository implements the interface.
var _ secondary.SequenceRepository = (*SequenceRepository)(nil)
