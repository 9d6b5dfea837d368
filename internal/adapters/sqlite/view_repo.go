package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/ports/secondary"
)

// ViewRepository implements secondary.ViewRepository with SQLite. Unread
// and caught-up derivations compare the fixed-width timestamp strings
// directly in SQL.
type ViewRepository struct {
	db *sql.DB
}

// NewViewRepository creates a new SQLite view repository.
func NewViewRepository(db *sql.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// MarkViewed upserts the participant's view row.
func (r *ViewRepository) MarkViewed(ctx context.Context, conversationID, participant string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversation_views (conversation_id, participant, last_viewed_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(conversation_id, participant) DO UPDATE SET last_viewed_at = excluded.last_viewed_at`,
		conversationID, participant, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("failed to mark viewed: %w", err)
	}
	return nil
}

// Get retrieves a participant's view row.
func (r *ViewRepository) Get(ctx context.Context, conversationID, participant string) (*secondary.ViewRecord, error) {
	record := &secondary.ViewRecord{ConversationID: conversationID, Participant: participant}
	var lastViewedAt string

	err := r.db.QueryRowContext(ctx,
		"SELECT last_viewed_at FROM conversation_views WHERE conversation_id = ? AND participant = ?",
		conversationID, participant,
	).Scan(&lastViewedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("view for %s in %s: %w", participant, conversationID, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	record.LastViewedAt = displayTime(lastViewedAt)
	return record, nil
}

// UnreadCount counts messages created strictly after the participant's
// view timestamp. With no view row every message is unread, which is what
// gives a late joiner the full backlog.
func (r *ViewRepository) UnreadCount(ctx context.Context, conversationID, participant string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages m
		 WHERE m.conversation_id = ?
		 AND m.created_at > COALESCE(
		 	(SELECT last_viewed_at FROM conversation_views WHERE conversation_id = ? AND participant = ?), '')`,
		conversationID, conversationID, participant,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread: %w", err)
	}
	return count, nil
}

// CaughtUp returns the participants whose view timestamp is at or after
// the conversation's most recent message. With no messages yet, every
// viewer is trivially caught up.
func (r *ViewRepository) CaughtUp(ctx context.Context, conversationID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.participant FROM conversation_views v
		 WHERE v.conversation_id = ?
		 AND v.last_viewed_at >= COALESCE(
		 	(SELECT MAX(created_at) FROM messages WHERE conversation_id = ?), '')
		 ORDER BY v.participant`,
		conversationID, conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list caught-up viewers: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan viewer: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// Ensure ViewRepository implements the interface.
var _ secondary.ViewRepository = (*ViewRepository)(nil)
