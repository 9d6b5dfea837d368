package app

import (
	"context"
	"fmt"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/core/scope"
	"github.com/example/hive/internal/ports/secondary"
)

// ScopeResolver computes the audience of a dynamically-scoped conversation.
// It is a pure read over the mission registry, evaluated fresh on every
// call: eligibility changes as missions start and end, and a participant
// who became active after the conversation opened is included the moment
// they match. Nothing is cached and nothing is written.
type ScopeResolver struct {
	directory secondary.MissionDirectory
}

// NewScopeResolver creates a resolver over a mission directory.
func NewScopeResolver(directory secondary.MissionDirectory) *ScopeResolver {
	return &ScopeResolver{directory: directory}
}

// Resolve returns the set of participants currently eligible for the scope.
func (r *ScopeResolver) Resolve(ctx context.Context, sc scope.Scope) (map[string]struct{}, error) {
	var (
		agents []string
		err    error
	)

	switch sc.Kind {
	case scope.KindRole:
		agents, err = r.directory.ActiveAgentsWithRole(ctx, sc.Role)
	case scope.KindEpic:
		agents, err = r.directory.ActiveAgentsOnEpic(ctx, sc.Epic)
	case scope.KindAll:
		agents, err = r.directory.ActiveAgents(ctx)
	default:
		return nil, fmt.Errorf("scope kind %q: %w", sc.Kind, comms.ErrInvalidScope)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scope %s: %w", sc, err)
	}

	members := make(map[string]struct{}, len(agents))
	for _, agent := range agents {
		members[agent] = struct{}{}
	}
	return members, nil
}

// ResolveDescriptor parses and resolves a stored scope descriptor.
func (r *ScopeResolver) ResolveDescriptor(ctx context.Context, descriptor string) (map[string]struct{}, error) {
	sc, err := scope.Parse(descriptor)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, sc)
}
