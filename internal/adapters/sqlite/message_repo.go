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

// MessageRepository implements secondary.MessageRepository with SQLite.
// Messages are append-only; the repository exposes no update or delete.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, conversation_id, sender, subject, body, priority, parent_id, thread_root_id, task_id, epic_id, artifact, created_at, expires_at`

// Create persists a new message. The priority-coded identifier is
// allocated and the owning conversation's updated_at bumped inside the
// same transaction as the insert.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.NewMessageRecord) (*secondary.MessageRecord, error) {
	priority := comms.Priority(message.Priority)
	if !priority.Valid() {
		return nil, fmt.Errorf("priority %q: %w", message.Priority, comms.ErrInvalidPriority)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx, ident.MessageSequence(priority))
	if err != nil {
		return nil, err
	}
	id := ident.MessageID(priority, seq)
	now := formatTime(time.Now())

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender, subject, body, priority, parent_id, thread_root_id, task_id, epic_id, artifact, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, message.ConversationID, message.Sender, nullString(message.Subject), message.Body,
		string(priority), nullString(message.ParentID), nullString(message.ThreadRootID),
		nullString(message.TaskID), nullString(message.EpicID), nullString(message.Artifact),
		now, nullString(message.ExpiresAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?",
		now, message.ConversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit message: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id,
	)
	record, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s: %w", id, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return record, nil
}

// ListByConversation returns a conversation's messages in stable order:
// creation time first, identifier sequence as the tiebreak.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanMessage(row rowScanner) (*secondary.MessageRecord, error) {
	var (
		record                   secondary.MessageRecord
		subject                  sql.NullString
		parentID, threadRootID   sql.NullString
		taskID, epicID, artifact sql.NullString
		createdAt                string
		expiresAt                sql.NullString
	)

	err := row.Scan(&record.ID, &record.ConversationID, &record.Sender, &subject, &record.Body,
		&record.Priority, &parentID, &threadRootID, &taskID, &epicID, &artifact,
		&createdAt, &expiresAt)
	if err != nil {
		return nil, err
	}

	record.Subject = subject.String
	record.ParentID = parentID.String
	record.ThreadRootID = threadRootID.String
	record.TaskID = taskID.String
	record.EpicID = epicID.String
	record.Artifact = artifact.String
	record.CreatedAt = displayTime(createdAt)
	record.ExpiresAt = expiresAt.String

	return &record, nil
}

// Ensure MessageRepository implements the interface.
var _ secondary.MessageRepository = (*MessageRepository)(nil)
