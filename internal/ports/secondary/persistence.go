// Package secondary defines the secondary ports (driven adapters) for the
// application: persistence and environment integrations the core drives.
package secondary

import (
	"context"
	"time"
)

// ConversationRepository defines the secondary port for conversation
// persistence. Creation allocates the conversation identifier atomically
// inside the same transaction as the insert.
type ConversationRepository interface {
	// CreateDirect creates an open direct conversation. The participant
	// pair is stored in normalized order so (a,b) and (b,a) collide on the
	// open-pair uniqueness constraint; a conflict surfaces ErrDuplicate.
	CreateDirect(ctx context.Context, subject, a, b, taskID, epicID string) (*ConversationRecord, error)

	// CreateGroup creates an open group conversation for a scope
	// descriptor. Group conversations are never deduplicated.
	CreateGroup(ctx context.Context, subject, scopeDescriptor, taskID, epicID string) (*ConversationRecord, error)

	// FindOpenDirect returns the open direct conversation between two
	// participants, in either order. ErrNotFound if none exists.
	FindOpenDirect(ctx context.Context, a, b string) (*ConversationRecord, error)

	// GetByID retrieves a conversation. ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*ConversationRecord, error)

	// Close marks a conversation closed and stamps the close time. A
	// no-op on an already-closed conversation; ErrNotFound if absent.
	Close(ctx context.Context, id string) error

	// List retrieves conversations matching the filters, most recently
	// updated first.
	List(ctx context.Context, filters ConversationFilters) ([]*ConversationRecord, error)

	// CountMessages returns the number of messages in a conversation.
	CountMessages(ctx context.Context, id string) (int, error)
}

// ConversationRecord represents a conversation as stored in persistence.
// Empty string timestamps mean null.
type ConversationRecord struct {
	ID           string
	Kind         string
	Subject      string
	State        string
	ParticipantA string // direct only, normalized order
	ParticipantB string // direct only, normalized order
	Scope        string // group only
	TaskID       string
	EpicID       string
	CreatedAt    string
	UpdatedAt    string
	ClosedAt     string
}

// ConversationFilters contains filter options for querying conversations.
type ConversationFilters struct {
	Kind        string
	State       string
	Participant string // matches either side of a direct pair
}

// MessageRepository defines the secondary port for message persistence.
// Messages are append-only: there is no update or delete. Creation
// allocates the priority-coded identifier and bumps the owning
// conversation's updated_at inside one transaction.
type MessageRepository interface {
	// Create persists a new message and returns the stored record.
	Create(ctx context.Context, message *NewMessageRecord) (*MessageRecord, error)

	// GetByID retrieves a message. ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*MessageRecord, error)

	// ListByConversation returns a conversation's messages in stable order:
	// creation time, then identifier.
	ListByConversation(ctx context.Context, conversationID string) ([]*MessageRecord, error)
}

// NewMessageRecord contains the fields for creating a message.
type NewMessageRecord struct {
	ConversationID string
	Sender         string
	Subject        string
	Body           string
	Priority       string
	ParentID       string
	ThreadRootID   string
	TaskID         string
	EpicID         string
	Artifact       string
	ExpiresAt      string
}

// MessageRecord represents a message as stored in persistence.
type MessageRecord struct {
	ID             string
	ConversationID string
	Sender         string
	Subject        string
	Body           string
	Priority       string
	ParentID       string
	ThreadRootID   string
	TaskID         string
	EpicID         string
	Artifact       string
	CreatedAt      string
	ExpiresAt      string
}

// ViewRepository defines the secondary port for per-participant view
// tracking. A view row is owned by the participant it describes.
type ViewRepository interface {
	// MarkViewed upserts the participant's view timestamp.
	MarkViewed(ctx context.Context, conversationID, participant string, at time.Time) error

	// Get retrieves a view row. ErrNotFound if the participant has never
	// viewed the conversation.
	Get(ctx context.Context, conversationID, participant string) (*ViewRecord, error)

	// UnreadCount counts messages created strictly after the participant's
	// view timestamp; all messages when no view row exists.
	UnreadCount(ctx context.Context, conversationID, participant string) (int, error)

	// CaughtUp returns the participants whose view timestamp is at or after
	// the conversation's most recent message.
	CaughtUp(ctx context.Context, conversationID string) ([]string, error)
}

// ViewRecord represents a participant's view bookmark.
type ViewRecord struct {
	ConversationID string
	Participant    string
	LastViewedAt   string
}

// SequenceRepository defines the secondary port for the identifier
// sequence counters. Next is a single atomic increment-and-return; there
// is no read-then-write path.
type SequenceRepository interface {
	// Next atomically increments and returns the named counter.
	Next(ctx context.Context, name string) (int64, error)

	// Current returns the counter's current value, zero if unused.
	Current(ctx context.Context, name string) (int64, error)
}

// MissionDirectory defines the read-only secondary port the scope
// resolver queries. Results reflect missions active at call time; nothing
// is cached between calls.
type MissionDirectory interface {
	// ActiveAgents lists every agent with an active mission.
	ActiveAgents(ctx context.Context) ([]string, error)

	// ActiveAgentsWithRole lists active agents holding the given role.
	ActiveAgentsWithRole(ctx context.Context, role string) ([]string, error)

	// ActiveAgentsOnEpic lists active agents whose claimed task belongs to
	// the given epic.
	ActiveAgentsOnEpic(ctx context.Context, epicID string) ([]string, error)
}

// MissionRepository defines the secondary port for mission registry
// persistence.
type MissionRepository interface {
	// Start persists a new mission. A second active mission for the same
	// agent surfaces ErrDuplicate.
	Start(ctx context.Context, mission *NewMissionRecord) (*MissionRecord, error)

	// End stamps the mission's end time. ErrNotFound if absent.
	End(ctx context.Context, id string) error

	// GetByID retrieves a mission. ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*MissionRecord, error)

	// GetActiveByAgent retrieves the agent's active mission. ErrNotFound
	// if the agent has none.
	GetActiveByAgent(ctx context.Context, agent string) (*MissionRecord, error)

	// ClaimTask links a mission to a task, creating the task row (and its
	// epic linkage) if it does not exist yet.
	ClaimTask(ctx context.Context, missionID, taskID, epicID string) error

	// ListActive lists missions with no end time, oldest first.
	ListActive(ctx context.Context) ([]*MissionRecord, error)
}

// NewMissionRecord contains the fields for registering a mission.
type NewMissionRecord struct {
	Agent  string
	Role   string
	TaskID string
	EpicID string
}

// MissionRecord represents a mission as stored in persistence.
type MissionRecord struct {
	ID        string
	Agent     string
	Role      string
	TaskID    string
	EpicID    string
	StartedAt string
	EndedAt   string
}
