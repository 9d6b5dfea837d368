package app

import (
	"context"
	"fmt"

	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/ports/secondary"
)

// RegistryServiceImpl implements the RegistryService facade over the
// mission repository.
type RegistryServiceImpl struct {
	missions secondary.MissionRepository
}

// NewRegistryService creates a new RegistryService with injected
// dependencies.
func NewRegistryService(missions secondary.MissionRepository) *RegistryServiceImpl {
	return &RegistryServiceImpl{missions: missions}
}

// StartMission registers an agent as active. The store enforces at most
// one active mission per agent.
func (s *RegistryServiceImpl) StartMission(ctx context.Context, req primary.StartMissionRequest) (*primary.Mission, error) {
	if req.Agent == "" {
		return nil, fmt.Errorf("mission requires an agent")
	}
	if req.Role == "" {
		return nil, fmt.Errorf("mission requires a role")
	}

	record, err := s.missions.Start(ctx, &secondary.NewMissionRecord{
		Agent:  req.Agent,
		Role:   req.Role,
		TaskID: req.TaskID,
		EpicID: req.EpicID,
	})
	if err != nil {
		return nil, err
	}
	return toMission(record), nil
}

// EndMission stamps the mission's end time. From then on, scope
// resolution no longer includes the agent in any audience.
func (s *RegistryServiceImpl) EndMission(ctx context.Context, missionID string) error {
	return s.missions.End(ctx, missionID)
}

// EndMissionForAgent ends the agent's active mission.
func (s *RegistryServiceImpl) EndMissionForAgent(ctx context.Context, agent string) error {
	record, err := s.missions.GetActiveByAgent(ctx, agent)
	if err != nil {
		return err
	}
	return s.missions.End(ctx, record.ID)
}

// ClaimTask records the task a mission is working.
func (s *RegistryServiceImpl) ClaimTask(ctx context.Context, missionID, taskID, epicID string) error {
	if taskID == "" {
		return fmt.Errorf("claim requires a task id")
	}
	return s.missions.ClaimTask(ctx, missionID, taskID, epicID)
}

// ListActive lists missions with no end time, oldest first.
func (s *RegistryServiceImpl) ListActive(ctx context.Context) ([]*primary.Mission, error) {
	records, err := s.missions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	missions := make([]*primary.Mission, len(records))
	for i, record := range records {
		missions[i] = toMission(record)
	}
	return missions, nil
}

func toMission(record *secondary.MissionRecord) *primary.Mission {
	return &primary.Mission{
		ID:        record.ID,
		Agent:     record.Agent,
		Role:      record.Role,
		TaskID:    record.TaskID,
		EpicID:    record.EpicID,
		StartedAt: record.StartedAt,
		EndedAt:   record.EndedAt,
	}
}

// Ensure RegistryServiceImpl implements the interface.
var _ primary.RegistryService = (*RegistryServiceImpl)(nil)
