package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/core/ident"
	"github.com/example/hive/internal/ports/secondary"
)

// MissionRepository implements both secondary.MissionRepository (registry
// writes) and secondary.MissionDirectory (the read-only view the scope
// resolver queries) over the missions/tasks/epics tables.
type MissionRepository struct {
	db *sql.DB
}

// NewMissionRepository creates a new SQLite mission repository.
func NewMissionRepository(db *sql.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

const missionColumns = `m.id, m.agent, m.role, m.task_id, t.epic_id, m.started_at, m.ended_at`
const missionFrom = ` FROM missions m LEFT JOIN tasks t ON m.task_id = t.id`

// Start registers a new mission. The partial unique index on active agents
// rejects a second active mission for the same agent.
func (r *MissionRepository) Start(ctx context.Context, mission *secondary.NewMissionRecord) (*secondary.MissionRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx, ident.MissionPrefix)
	if err != nil {
		return nil, err
	}
	id := ident.MissionID(seq)
	now := formatTime(time.Now())

	if mission.TaskID != "" {
		if err := ensureTask(ctx, tx, mission.TaskID, mission.EpicID, now); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO missions (id, agent, role, task_id, started_at) VALUES (?, ?, ?, ?, ?)",
		id, mission.Agent, mission.Role, nullString(mission.TaskID), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("agent %s already has an active mission: %w", mission.Agent, comms.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to start mission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit mission: %w", err)
	}

	return r.GetByID(ctx, id)
}

// End stamps the mission's end time. Ending an already-ended mission is a
// no-op.
func (r *MissionRepository) End(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE missions SET ended_at = ? WHERE id = ? AND ended_at IS NULL",
		formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to end mission: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var count int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM missions WHERE id = ?", id).Scan(&count); err != nil {
			return fmt.Errorf("failed to check mission: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("mission %s: %w", id, comms.ErrNotFound)
		}
	}
	return nil
}

// GetByID retrieves a mission by its ID.
func (r *MissionRepository) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+missionFrom+` WHERE m.id = ?`, id)
	record, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mission %s: %w", id, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return record, nil
}

// GetActiveByAgent retrieves the agent's active mission.
func (r *MissionRepository) GetActiveByAgent(ctx context.Context, agent string) (*secondary.MissionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+missionColumns+missionFrom+` WHERE m.agent = ? AND m.ended_at IS NULL`, agent,
	)
	record, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no active mission for %s: %w", agent, comms.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return record, nil
}

// ClaimTask links an active mission to a task, creating the task (and its
// epic linkage) if needed.
func (r *MissionRepository) ClaimTask(ctx context.Context, missionID, taskID, epicID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	if err := ensureTask(ctx, tx, taskID, epicID, now); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE missions SET task_id = ? WHERE id = ? AND ended_at IS NULL",
		taskID, missionID,
	)
	if err != nil {
		return fmt.Errorf("failed to claim task: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("active mission %s: %w", missionID, comms.ErrNotFound)
	}

	return tx.Commit()
}

// ListActive lists missions with no end time, oldest first.
func (r *MissionRepository) ListActive(ctx context.Context) ([]*secondary.MissionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+missionColumns+missionFrom+` WHERE m.ended_at IS NULL ORDER BY m.started_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MissionRecord
	for rows.Next() {
		record, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ActiveAgents lists every agent with an active mission.
func (r *MissionRepository) ActiveAgents(ctx context.Context) ([]string, error) {
	return r.queryAgents(ctx,
		"SELECT agent FROM missions WHERE ended_at IS NULL ORDER BY agent")
}

// ActiveAgentsWithRole lists active agents holding the given role.
func (r *MissionRepository) ActiveAgentsWithRole(ctx context.Context, role string) ([]string, error) {
	return r.queryAgents(ctx,
		"SELECT agent FROM missions WHERE ended_at IS NULL AND role = ? ORDER BY agent", role)
}

// ActiveAgentsOnEpic lists active agents whose claimed task belongs to the
// given epic.
func (r *MissionRepository) ActiveAgentsOnEpic(ctx context.Context, epicID string) ([]string, error) {
	return r.queryAgents(ctx,
		`SELECT m.agent FROM missions m
		 JOIN tasks t ON m.task_id = t.id
		 WHERE m.ended_at IS NULL AND t.epic_id = ?
		 ORDER BY m.agent`, epicID)
}

func (r *MissionRepository) queryAgents(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []string
	for rows.Next() {
		var agent string
		if err := rows.Scan(&agent); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// ensureTask upserts a task row and, when given, its epic.
func ensureTask(ctx context.Context, tx *sql.Tx, taskID, epicID, now string) error {
	if epicID != "" {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO epics (id, created_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING",
			epicID, now,
		)
		if err != nil {
			return fmt.Errorf("failed to ensure epic: %w", err)
		}
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (id, epic_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET epic_id = COALESCE(excluded.epic_id, tasks.epic_id)`,
		taskID, nullString(epicID), now,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure task: %w", err)
	}
	return nil
}

func scanMission(row rowScanner) (*secondary.MissionRecord, error) {
	var (
		record         secondary.MissionRecord
		taskID, epicID sql.NullString
		startedAt      string
		endedAt        sql.NullString
	)

	err := row.Scan(&record.ID, &record.Agent, &record.Role, &taskID, &epicID, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}

	record.TaskID = taskID.String
	record.EpicID = epicID.String
	record.StartedAt = displayTime(startedAt)
	record.EndedAt = displayNullTime(endedAt)

	return &record, nil
}

// Ensure MissionRepository implements both interfaces.
var (
	_ secondary.MissionRepository = (*MissionRepository)(nil)
	_ secondary.MissionDirectory  = (*MissionRepository)(nil)
)
