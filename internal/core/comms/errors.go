package comms

import "errors"

// Error kinds surfaced by the coordination subsystem. Services wrap these
// with operation context via fmt.Errorf("...: %w", err); callers match with
// errors.Is.
var (
	// ErrNotFound signals an unknown conversation, message, mission or view
	// identifier. Never silently treated as an empty result.
	ErrNotFound = errors.New("not found")

	// ErrAllocation signals that the atomic identifier sequence increment
	// failed. Allocation never falls back to a non-atomic path.
	ErrAllocation = errors.New("identifier allocation failed")

	// ErrDuplicate signals a uniqueness-constraint violation, e.g. a second
	// open direct conversation for the same pair. Repositories surface it so
	// services can detect a lost creation race.
	ErrDuplicate = errors.New("duplicate record")

	// ErrContention signals that the bounded internal retry for a creation
	// race was exhausted.
	ErrContention = errors.New("storage contention")

	// ErrConversationClosed signals a post against a closed conversation.
	// The caller must open a new conversation instead.
	ErrConversationClosed = errors.New("conversation is closed")

	// ErrCrossConversationReply signals a reply that references a message in
	// a different conversation.
	ErrCrossConversationReply = errors.New("reply targets a message in a different conversation")

	// ErrInvalidScope signals a malformed scope descriptor.
	ErrInvalidScope = errors.New("invalid scope descriptor")

	// ErrInvalidPriority signals an unknown priority name.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrNotEligible signals an unread-count request for a participant who
	// is not (or no longer) in the conversation's audience.
	ErrNotEligible = errors.New("participant is not in the conversation audience")
)
