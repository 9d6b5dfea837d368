// Package ident contains the pure identifier format rules for the
// coordination subsystem. Sequence numbers come from the storage layer's
// atomic counters; this package only defines how they are rendered.
package ident

import (
	"fmt"
	"strings"

	"github.com/example/hive/internal/core/comms"
)

// Identifier prefixes
const (
	MessagePrefix      = "MSG"
	ConversationPrefix = "CONV"
	DiscussionPrefix   = "DISC"
	MissionPrefix      = "MISSION"
)

// MessageID renders a priority-coded message identifier, e.g. MSG-H-0042.
// The sequence is monotonic per priority class.
func MessageID(p comms.Priority, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", MessagePrefix, p.Letter(), seq)
}

// ConversationID renders a direct-conversation identifier, e.g. CONV-0007.
func ConversationID(seq int64) string {
	return fmt.Sprintf("%s-%04d", ConversationPrefix, seq)
}

// DiscussionID renders a group-conversation identifier, e.g. DISC-0003.
func DiscussionID(seq int64) string {
	return fmt.Sprintf("%s-%04d", DiscussionPrefix, seq)
}

// MissionID renders a mission identifier, e.g. MISSION-012.
func MissionID(seq int64) string {
	return fmt.Sprintf("%s-%03d", MissionPrefix, seq)
}

// MessageSequence returns the counter name for a priority class, e.g. MSG-C.
func MessageSequence(p comms.Priority) string {
	return MessagePrefix + "-" + p.Letter()
}

// IsMessageID reports whether id looks like a message identifier.
func IsMessageID(id string) bool {
	return strings.HasPrefix(id, MessagePrefix+"-")
}

// IsConversationID reports whether id looks like a conversation identifier,
// direct or group.
func IsConversationID(id string) bool {
	return strings.HasPrefix(id, ConversationPrefix+"-") || strings.HasPrefix(id, DiscussionPrefix+"-")
}
