// Package scope contains the pure representation of discussion audiences.
// A scope is a tagged variant (role / epic / all) resolved against the
// mission registry at read time, never snapshotted at creation.
package scope

import (
	"fmt"
	"strings"

	"github.com/example/hive/internal/core/comms"
)

// Kind discriminates the scope variants.
type Kind string

const (
	KindRole Kind = "role"
	KindEpic Kind = "epic"
	KindAll  Kind = "all"
)

// Scope describes the audience of a group conversation. Exactly one variant
// is populated, selected by Kind.
type Scope struct {
	Kind Kind
	Role string // set when Kind == KindRole
	Epic string // set when Kind == KindEpic
}

// Role returns a scope matching every active mission with the given role.
func Role(name string) Scope {
	return Scope{Kind: KindRole, Role: name}
}

// Epic returns a scope matching every active mission whose claimed task
// belongs to the given epic.
func Epic(id string) Scope {
	return Scope{Kind: KindEpic, Epic: id}
}

// All returns a scope matching every active mission.
func All() Scope {
	return Scope{Kind: KindAll}
}

// Parse parses a scope descriptor: "role:<name>", "epic:<id>" or "all".
func Parse(s string) (Scope, error) {
	if s == "all" {
		return All(), nil
	}

	kind, value, ok := strings.Cut(s, ":")
	if !ok || value == "" {
		return Scope{}, fmt.Errorf("scope %q: %w", s, comms.ErrInvalidScope)
	}

	switch Kind(kind) {
	case KindRole:
		return Role(value), nil
	case KindEpic:
		return Epic(value), nil
	}
	return Scope{}, fmt.Errorf("scope %q: %w", s, comms.ErrInvalidScope)
}

// String renders the descriptor in its storable form.
func (s Scope) String() string {
	switch s.Kind {
	case KindRole:
		return "role:" + s.Role
	case KindEpic:
		return "epic:" + s.Epic
	default:
		return "all"
	}
}
