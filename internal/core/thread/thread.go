// Package thread contains the pure topology rules for message threading.
// Direct conversations are flat; group conversations thread to unbounded
// depth with a transitive thread root.
package thread

import (
	"fmt"

	"github.com/example/hive/internal/core/comms"
)

// Linkage is the computed parent/root wiring for a new message. Empty
// strings mean null: a flat message or a thread root.
type Linkage struct {
	ParentID     string
	ThreadRootID string
}

// ParentRef carries the fields of a candidate parent message that the
// topology rules need.
type ParentRef struct {
	ID             string
	ConversationID string
	ThreadRootID   string // empty when the parent is itself a root
}

// CanPost evaluates whether a conversation accepts new messages.
func CanPost(state string) error {
	if state == comms.StateClosed {
		return comms.ErrConversationClosed
	}
	return nil
}

// Resolve computes the linkage for a message posted to the given
// conversation, optionally in reply to parent.
//
// Rules:
//   - direct conversations are flat; any reply target is ignored
//   - a group message without a parent is a thread root
//   - a reply inherits its thread root transitively from the parent
//   - replying across conversations is rejected
func Resolve(kind, conversationID string, parent *ParentRef) (Linkage, error) {
	if kind == comms.KindDirect {
		return Linkage{}, nil
	}

	if parent == nil {
		return Linkage{}, nil
	}

	if parent.ConversationID != conversationID {
		return Linkage{}, fmt.Errorf("reply to %s: %w", parent.ID, comms.ErrCrossConversationReply)
	}

	root := parent.ThreadRootID
	if root == "" {
		root = parent.ID
	}
	return Linkage{ParentID: parent.ID, ThreadRootID: root}, nil
}
