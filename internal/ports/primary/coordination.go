// Package primary defines the primary ports (driving interfaces) of the
// application: the operations the CLI invokes against the core.
package primary

import "context"

// CoordinationService is the facade over the coordination messaging
// subsystem: direct messages, dynamically-scoped discussions, threading,
// and per-participant read state.
type CoordinationService interface {
	// Send opens (or reuses) the open direct conversation between sender and
	// recipient and posts a message into it.
	Send(ctx context.Context, req SendRequest) (*SendResponse, error)

	// Discuss opens a new group conversation for a scope descriptor and
	// posts its root message. Group conversations are never implicitly
	// reused; distinct topics may share a scope.
	Discuss(ctx context.Context, req DiscussRequest) (*SendResponse, error)

	// Reply posts a reply to an existing message, inheriting its
	// conversation and thread root.
	Reply(ctx context.Context, req ReplyRequest) (*SendResponse, error)

	// Inbox lists the conversations visible to a participant with their
	// unread counts, most recently updated first.
	Inbox(ctx context.Context, participant string, unreadOnly bool) ([]*InboxEntry, error)

	// Show returns a conversation and its full ordered message history.
	Show(ctx context.Context, conversationID string) (*ConversationView, error)

	// Close closes a conversation. Closing an already-closed conversation
	// is a no-op. A closed conversation never reopens.
	Close(ctx context.Context, conversationID string) error

	// MarkViewed records that a participant has observed a conversation up
	// to now. Sending never marks the sender's own view.
	MarkViewed(ctx context.Context, conversationID, participant string) error

	// UnreadCount returns the number of messages a participant has not yet
	// observed in a conversation. Participants outside a group
	// conversation's current audience get ErrNotEligible.
	UnreadCount(ctx context.Context, conversationID, participant string) (int, error)

	// Status reports audience coverage for a conversation or message id:
	// who is eligible, who is caught up, who is behind.
	Status(ctx context.Context, id string) (*StatusReport, error)
}

// SendRequest contains parameters for a direct message.
type SendRequest struct {
	Sender    string
	Recipient string
	Subject   string
	Body      string
	Priority  string
	TaskID    string
	EpicID    string
	Artifact  string
	ExpiresAt string // RFC3339, optional advisory expiry
}

// DiscussRequest contains parameters for opening a group discussion.
type DiscussRequest struct {
	Sender    string
	Scope     string // "role:<name>", "epic:<id>" or "all"
	Subject   string
	Body      string
	Priority  string
	TaskID    string
	EpicID    string
	Artifact  string
	ExpiresAt string
}

// ReplyRequest contains parameters for replying to a message.
type ReplyRequest struct {
	Sender    string
	MessageID string
	Body      string
	Priority  string
	Artifact  string
}

// SendResponse is the result of any posting operation.
type SendResponse struct {
	ConversationID string
	Message        *Message
}

// Conversation represents a conversation at the port boundary.
type Conversation struct {
	ID           string
	Kind         string // "direct" or "group"
	Subject      string
	State        string // "open" or "closed"
	ParticipantA string // direct only
	ParticipantB string // direct only
	Scope        string // group only
	TaskID       string
	EpicID       string
	CreatedAt    string
	UpdatedAt    string
	ClosedAt     string
}

// Message represents a message at the port boundary. Messages are
// append-only; this is a read-only view of a persisted record.
type Message struct {
	ID             string
	ConversationID string
	Sender         string
	Subject        string
	Body           string
	Priority       string
	ParentID       string // empty for flat messages and thread roots
	ThreadRootID   string // empty for flat messages and thread roots
	TaskID         string
	EpicID         string
	Artifact       string
	CreatedAt      string
	ExpiresAt      string
}

// InboxEntry pairs a conversation with a participant's unread count.
type InboxEntry struct {
	Conversation *Conversation
	Unread       int
}

// ConversationView is a conversation with its full message history in
// stable order (creation time, then identifier sequence).
type ConversationView struct {
	Conversation *Conversation
	Messages     []*Message
}

// StatusReport describes audience coverage for a conversation.
type StatusReport struct {
	ConversationID string
	Kind           string
	State          string
	Scope          string   // group only
	Eligible       []string // current audience, sorted
	CaughtUp       []string // eligible participants viewed through the latest message
	Behind         []string // eligible participants with unread history
}
