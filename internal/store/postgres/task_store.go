package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// TaskStore implements store.TaskStore.
type TaskStore struct {
	db store.Querier
}

func NewTaskStore(db store.Querier) *TaskStore {
	return &TaskStore{db: db}
}

const taskColumns = `id, trip_id, title, description, status, created_by, created_at, updated_at`

func scanTask(row pgx.Row) (*types.Task, error) {
	t := &types.Task{}
	err := row.Scan(
		&t.ID,
		&t.TripID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskStore) CreateTask(ctx context.Context, task *types.Task) (string, error) {
	query := `
		INSERT INTO tasks (trip_id, title, description, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		task.TripID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedBy,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *TaskStore) GetTask(ctx context.Context, taskID, tripID string) (*types.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND trip_id = $2`

	return scanTask(s.db.QueryRow(ctx, query, taskID, tripID))
}

func (s *TaskStore) ListTripTasks(ctx context.Context, tripID string) ([]*types.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trip_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) UpdateTaskStatus(ctx context.Context, taskID, tripID string, status types.TaskStatus) (*types.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND trip_id = $3
		RETURNING ` + taskColumns

	return scanTask(s.db.QueryRow(ctx, query, status, taskID, tripID))
}
