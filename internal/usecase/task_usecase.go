package usecase

import (
	"context"

	"taskops/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTaskInput defines the data required to create a task. The owner is
// always the authenticated user; there is intentionally no owner field here.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      entity.TaskStatus
}

// UpdateTaskInput defines a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *entity.TaskStatus
}

// ListTasksInput defines pagination for listing a user's tasks.
type ListTasksInput struct {
	Skip  int
	Limit int
}

// TaskUsecase defines the interface for task-related business operations.
// Every operation takes the authenticated user's ID and enforces that the
// task belongs to that user before touching it.
type TaskUsecase interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, input *ListTasksInput) ([]*entity.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
