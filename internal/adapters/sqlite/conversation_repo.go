package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/core/ident"
	"github.com/example/hive/internal/ports/secondary"
)

// ConversationRepository implements secondary.ConversationRepository with
// SQLite. Identifier allocation happens inside the insert transaction.
type ConversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new SQLite conversation repository.
func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// orderPair returns a direct pair in normalized (lexical) order so the
// open-pair uniqueness index treats (a,b) and (b,a) as the same pair.
func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

const conversationColumns = `id, kind, subject, state, participant_a, participant_b, scope, task_id, epic_id, created_at, updated_at, closed_at`

// CreateDirect creates an open direct conversation for a normalized pair.
// A second open conversation for the same pair lands on the partial unique
// index and surfaces ErrDuplicate; the sequence increment rolls back with
// the insert, so lost races burn no identifiers.
func (r *ConversationRepository) CreateDirect(ctx context.Context, subject, a, b, taskID, epicID string) (*secondary.ConversationRecord, error) {
	a, b = orderPair(a, b)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx, ident.ConversationPrefix)
	if err != nil {
		return nil, err
	}
	id := ident.ConversationID(seq)
	now := formatTime(time.Now())

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversations (id, kind, subject, state, participant_a, participant_b, task_id, epic_id, created_at, updated_at)
		 VALUES (?, 'direct', ?, 'open', ?, ?, ?, ?, ?, ?)`,
		id, subject, a, b, nullString(taskID), nullString(epicID), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("open direct conversation for %s/%s exists: %w", a, b, comms.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit conversation: %w", err)
	}

	return r.GetByID(ctx, id)
}

// CreateGroup creates an open group conversation. Scope is stored as its
// descriptor string and resolved at read time, never snapshotted.
func (r *ConversationRepository) CreateGroup(ctx context.Context, subject, scopeDescriptor, taskID, epicID string) (*secondary.ConversationRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx, ident.DiscussionPrefix)
	if err != nil {
		return nil, err
	}
	id := ident.DiscussionID(seq)
	now := formatTime(time.Now())

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversations (id, kind, subject, state, scope, task_id, epic_id, created_at, updated_at)
		 VALUES (?, 'group', ?, 'open', ?, ?, ?, ?, ?)`,
		id, subject, scopeDescriptor, nullString(taskID), nullString(epicID), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discussion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit discussion: %w", err)
	}

	return r.GetByID(ctx, id)
}

// FindOpenDirect returns the open direct conversation between two
// participants, regardless of argument order.
func (r *ConversationRepository) FindOpenDirect(ctx context.Context, a, b string) (*secondary.ConversationRecord, error) {
	a, b = orderPair(a, b)

	row := r.db.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations
		 WHERE kind = 'direct' AND state = 'open' AND participant_a = ? AND participant_b = ?`,
		a, b,
	)
	record, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no open direct conversation for %s/%s: %w", a, b, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return record, nil
}

// GetByID retrieves a conversation by its ID.
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*secondary.ConversationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = ?`, id,
	)
	record, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation %s: %w", id, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return record, nil
}

// Close marks a conversation closed. Closing an already-closed
// conversation is a no-op; a closed conversation never reopens.
func (r *ConversationRepository) Close(ctx context.Context, id string) error {
	now := formatTime(time.Now())
	result, err := r.db.ExecContext(ctx,
		"UPDATE conversations SET state = 'closed', closed_at = ?, updated_at = ? WHERE id = ? AND state = 'open'",
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to close conversation: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var count int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversations WHERE id = ?", id).Scan(&count); err != nil {
			return fmt.Errorf("failed to check conversation: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("conversation %s: %w", id, comms.ErrNotFound)
		}
		// Already closed.
	}
	return nil
}

// List retrieves conversations matching the filters, most recently updated
// first.
func (r *ConversationRepository) List(ctx context.Context, filters secondary.ConversationFilters) ([]*secondary.ConversationRecord, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE 1=1`
	args := []any{}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}
	if filters.State != "" {
		query += " AND state = ?"
		args = append(args, filters.State)
	}
	if filters.Participant != "" {
		query += " AND (participant_a = ? OR participant_b = ?)"
		args = append(args, filters.Participant, filters.Participant)
	}

	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ConversationRecord
	for rows.Next() {
		record, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountMessages returns the number of messages in a conversation.
func (r *ConversationRepository) CountMessages(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ?", id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*secondary.ConversationRecord, error) {
	var (
		record                 secondary.ConversationRecord
		participantA           sql.NullString
		participantB           sql.NullString
		scopeDescriptor        sql.NullString
		taskID, epicID         sql.NullString
		createdAt, updatedAt   string
		closedAt               sql.NullString
	)

	err := row.Scan(&record.ID, &record.Kind, &record.Subject, &record.State,
		&participantA, &participantB, &scopeDescriptor, &taskID, &epicID,
		&createdAt, &updatedAt, &closedAt)
	if err != nil {
		return nil, err
	}

	record.ParticipantA = participantA.String
	record.ParticipantB = participantB.String
	record.Scope = scopeDescriptor.String
	record.TaskID = taskID.String
	record.EpicID = epicID.String
	record.CreatedAt = displayTime(createdAt)
	record.UpdatedAt = displayTime(updatedAt)
	record.ClosedAt = displayNullTime(closedAt)

	return &record, nil
}

// Ensure ConversationRepository implements the interface.
var _ secondary.ConversationRepository = (*ConversationRepository)(nil)
