package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/ports/secondary"
)

// mockMissionRepository implements secondary.MissionRepository for testing.
type mockMissionRepository struct {
	missions map[string]*secondary.MissionRecord
	nextSeq  int
	startErr error
}

func newMockMissionRepository() *mockMissionRepository {
	return &mockMissionRepository{missions: make(map[string]*secondary.MissionRecord)}
}

func (m *mockMissionRepository) Start(ctx context.Context, mission *secondary.NewMissionRecord) (*secondary.MissionRecord, error) {
	if m.startErr != nil {
		return nil, m.startErr
	}
	for _, existing := range m.missions {
		if existing.Agent == mission.Agent && existing.EndedAt == "" {
			return nil, comms.ErrDuplicate
		}
	}
	m.nextSeq++
	record := &secondary.MissionRecord{
		ID:        fmt.Sprintf("MISSION-%03d", m.nextSeq),
		Agent:     mission.Agent,
		Role:      mission.Role,
		TaskID:    mission.TaskID,
		EpicID:    mission.EpicID,
		StartedAt: "2026-01-02T10:00:00Z",
	}
	m.missions[record.ID] = record
	return record, nil
}

func (m *mockMissionRepository) End(ctx context.Context, id string) error {
	mission, ok := m.missions[id]
	if !ok {
		return comms.ErrNotFound
	}
	mission.EndedAt = "2026-01-02T11:00:00Z"
	return nil
}

func (m *mockMissionRepository) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	if mission, ok := m.missions[id]; ok {
		return mission, nil
	}
	return nil, comms.ErrNotFound
}

func (m *mockMissionRepository) GetActiveByAgent(ctx context.Context, agent string) (*secondary.MissionRecord, error) {
	for _, mission := range m.missions {
		if mission.Agent == agent && mission.EndedAt == "" {
			return mission, nil
		}
	}
	return nil, comms.ErrNotFound
}

func (m *mockMissionRepository) ClaimTask(ctx context.Context, missionID, taskID, epicID string) error {
	mission, ok := m.missions[missionID]
	if !ok {
		return comms.ErrNotFound
	}
	mission.TaskID = taskID
	mission.EpicID = epicID
	return nil
}

func (m *mockMissionRepository) ListActive(ctx context.Context) ([]*secondary.MissionRecord, error) {
	var result []*secondary.MissionRecord
	for _, mission := range m.missions {
		if mission.EndedAt == "" {
			result = append(result, mission)
		}
	}
	return result, nil
}

func TestRegistryService_StartMission(t *testing.T) {
	ctx := context.Background()

	t.Run("requires agent and role", func(t *testing.T) {
		service := NewRegistryService(newMockMissionRepository())
		if _, err := service.StartMission(ctx, primary.StartMissionRequest{Role: "backend"}); err == nil {
			t.Error("expected error for missing agent")
		}
		if _, err := service.StartMission(ctx, primary.StartMissionRequest{Agent: "backend-1"}); err == nil {
			t.Error("expected error for missing role")
		}
	})

	t.Run("registers and surfaces duplicates", func(t *testing.T) {
		service := NewRegistryService(newMockMissionRepository())
		mission, err := service.StartMission(ctx, primary.StartMissionRequest{Agent: "backend-1", Role: "backend"})
		if err != nil {
			t.Fatalf("StartMission failed: %v", err)
		}
		if mission.ID == "" {
			t.Error("expected a mission id")
		}

		_, err = service.StartMission(ctx, primary.StartMissionRequest{Agent: "backend-1", Role: "qa"})
		if !errors.Is(err, comms.ErrDuplicate) {
			t.Errorf("err = %v, want ErrDuplicate", err)
		}
	})
}

func TestRegistryService_EndMissionForAgent(t *testing.T) {
	ctx := context.Background()
	repo := newMockMissionRepository()
	service := NewRegistryService(repo)

	mission, err := service.StartMission(ctx, primary.StartMissionRequest{Agent: "qa-1", Role: "qa"})
	if err != nil {
		t.Fatalf("StartMission failed: %v", err)
	}

	if err := service.EndMissionForAgent(ctx, "qa-1"); err != nil {
		t.Fatalf("EndMissionForAgent failed: %v", err)
	}
	if repo.missions[mission.ID].EndedAt == "" {
		t.Error("expected the active mission to be ended")
	}

	err = service.EndMissionForAgent(ctx, "qa-1")
	if !errors.Is(err, comms.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound without an active mission", err)
	}
}

func TestRegistryService_ClaimTask(t *testing.T) {
	ctx := context.Background()
	repo := newMockMissionRepository()
	service := NewRegistryService(repo)

	mission, err := service.StartMission(ctx, primary.StartMissionRequest{Agent: "backend-1", Role: "backend"})
	if err != nil {
		t.Fatalf("StartMission failed: %v", err)
	}

	if err := service.ClaimTask(ctx, mission.ID, "", "EPIC-01"); err == nil {
		t.Error("expected error for missing task id")
	}
	if err := service.ClaimTask(ctx, mission.ID, "TASK-1", "EPIC-01"); err != nil {
		t.Fatalf("ClaimTask failed: %v", err)
	}
	if repo.missions[mission.ID].TaskID != "TASK-1" {
		t.Error("expected the claim to be recorded")
	}
}
