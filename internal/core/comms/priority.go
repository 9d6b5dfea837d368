// Package comms holds the shared vocabulary of the coordination subsystem:
// message priorities, conversation kinds and states, and the error taxonomy
// that services and repositories agree on.
package comms

import "fmt"

// Priority is the urgency class of a message. Identifier sequences are
// scoped per priority class.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Conversation kinds
const (
	KindDirect = "direct"
	KindGroup  = "group"
)

// Conversation lifecycle states
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// ParsePriority parses a priority name. Single-letter shorthand (c/h/m/l)
// is accepted for CLI convenience.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "critical", "c", "C":
		return PriorityCritical, nil
	case "high", "h", "H":
		return PriorityHigh, nil
	case "medium", "m", "M":
		return PriorityMedium, nil
	case "low", "l", "L":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("priority %q: %w", s, ErrInvalidPriority)
}

// Letter returns the single-letter code used in message identifiers.
func (p Priority) Letter() string {
	switch p {
	case PriorityCritical:
		return "C"
	case PriorityHigh:
		return "H"
	case PriorityLow:
		return "L"
	default:
		return "M"
	}
}

// Rank orders priorities for display, critical first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
