package impl

import (
	"context"
	"log/slog"

	"taskops/internal/domain/entity"
	domainerrors "taskops/internal/domain/errors"
	"taskops/internal/domain/repository"
	"taskops/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultTaskListLimit = 100
	maxTaskListLimit     = 100
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(taskRepo repository.TaskRepository, logger *slog.Logger) usecase.TaskUsecase {
	return &taskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// CreateTask creates a new task owned by the authenticated user. The owner is
// always taken from the resolved identity; any owner a client smuggles into
// the request body is ignored by construction.
func (srv *taskService) CreateTask(ctx context.Context, userID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	status := input.Status
	if status == "" {
		status = entity.TaskStatusPending
	}
	if !status.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task status: " + string(status))
	}

	task := &entity.Task{
		OwnerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		srv.logger.Error("Failed to create task", "error", err, "userID", userID)

		return nil, errors.WithStack(err)
	}
	srv.logger.Debug("Task created", "taskID", task.ID, "userID", userID)

	return task, nil
}

// ListTasks returns the authenticated user's tasks. Other users' tasks are
// excluded by the query itself.
func (srv *taskService) ListTasks(ctx context.Context, userID uuid.UUID, input *usecase.ListTasksInput) ([]*entity.Task, error) {
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}
	limit := input.Limit
	if limit <= 0 || limit > maxTaskListLimit {
		limit = defaultTaskListLimit
	}

	tasks, err := srv.taskRepo.ListByOwner(ctx, userID, skip, limit)
	if err != nil {
		srv.logger.Error("Failed to list tasks", "error", err, "userID", userID)

		return nil, errors.WithStack(err)
	}

	return tasks, nil
}

// GetTask returns a single task after the ownership check.
func (srv *taskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	return srv.findOwnedTask(ctx, userID, taskID)
}

// UpdateTask applies a partial update to a task after the ownership check.
func (srv *taskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.findOwnedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown task status: " + string(*input.Status))
		}
		task.Status = *input.Status
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("task vanished during update")
		}
		srv.logger.Error("Failed to update task", "error", err, "taskID", taskID)

		return nil, errors.WithStack(err)
	}
	srv.logger.Debug("Task updated", "taskID", taskID, "userID", userID)

	return task, nil
}

// DeleteTask removes a task after the ownership check.
func (srv *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := srv.findOwnedTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := srv.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("task vanished during delete")
		}
		srv.logger.Error("Failed to delete task", "error", err, "taskID", taskID)

		return errors.WithStack(err)
	}
	srv.logger.Debug("Task deleted", "taskID", taskID, "userID", userID)

	return nil
}

// findOwnedTask loads a task and applies the ownership guard. A task owned by
// someone else is reported with the same error as a missing task, so the
// response never confirms that the task exists.
func (srv *taskService) findOwnedTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("task lookup failed")
		}
		srv.logger.Error("Failed to find task", "error", err, "taskID", taskID)

		return nil, errors.WithStack(err)
	}

	if !task.OwnedBy(userID) {
		// Logged distinctly from a genuine miss, returned identically.
		srv.logger.Warn("Task ownership violation", "taskID", taskID, "userID", userID, "ownerID", task.OwnerID)

		return nil, domainerrors.ErrTaskNotFound.WrapMessage("task not owned by requester")
	}

	return task, nil
}
