package models

import (
	"context"
	goerrors "errors"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

const taskEventSource = "task_model"

// TaskModel manages the trip's shared kanban tasks.
type TaskModel struct {
	store     store.TaskStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewTaskModel(taskStore store.TaskStore, guard AccessVerifier, publisher types.EventPublisher) *TaskModel {
	return &TaskModel{
		store:     taskStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("task"),
	}
}

// CreateTask adds a task in TODO state.
func (m *TaskModel) CreateTask(ctx context.Context, tripID, userID string, req *types.TaskCreate) (*types.Task, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	task := &types.Task{
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		Status:      types.TaskStatusTodo,
		CreatedBy:   userID,
	}

	taskID, err := m.store.CreateTask(ctx, task)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetTask(ctx, taskID, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeTaskCreated, tripID, userID, created, taskEventSource)

	return created, nil
}

// UpdateTaskStatus moves a task between columns. Any of the three states can
// move to any other, tasks reopen freely.
func (m *TaskModel) UpdateTaskStatus(ctx context.Context, tripID, taskID, userID string, status types.TaskStatus) (*types.Task, error) {
	if !status.IsValid() {
		return nil, errors.ValidationFailed("invalid status", "unknown task status: "+string(status))
	}

	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	updated, err := m.store.UpdateTaskStatus(ctx, taskID, tripID, status)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("task", taskID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeTaskUpdated, tripID, userID, updated, taskEventSource)

	return updated, nil
}

// ListTasks returns all tasks on the trip.
func (m *TaskModel) ListTasks(ctx context.Context, tripID, userID string) ([]*types.Task, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	tasks, err := m.store.ListTripTasks(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return tasks, nil
}
