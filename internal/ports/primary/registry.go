package primary

import "context"

// RegistryService manages the mission registry: which agents are active,
// what role they hold, and which task (and so epic) they have claimed.
// Scope resolution reads this registry at call time.
type RegistryService interface {
	// StartMission registers an agent as active with a role. An agent has
	// at most one active mission.
	StartMission(ctx context.Context, req StartMissionRequest) (*Mission, error)

	// EndMission stamps the mission's end time, removing the agent from
	// every dynamically-scoped audience.
	EndMission(ctx context.Context, missionID string) error

	// EndMissionForAgent ends the agent's active mission.
	EndMissionForAgent(ctx context.Context, agent string) error

	// ClaimTask records the task a mission is working, linking it to an
	// epic for epic-scoped discussions.
	ClaimTask(ctx context.Context, missionID, taskID, epicID string) error

	// ListActive lists missions with no end time.
	ListActive(ctx context.Context) ([]*Mission, error)
}

// StartMissionRequest contains parameters for registering a mission.
type StartMissionRequest struct {
	Agent  string
	Role   string
	TaskID string
	EpicID string
}

// Mission represents a mission at the port boundary.
type Mission struct {
	ID        string
	Agent     string
	Role      string
	TaskID    string
	EpicID    string
	StartedAt string
	EndedAt   string
}
