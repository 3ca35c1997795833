package repository

import (
	"context"
	"errors"

	"taskops/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is a domain-specific error returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID, regardless of owner.
	// Ownership is enforced by the application layer, not here.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// ListByOwner retrieves the tasks belonging to a user, newest first,
	// with offset/limit pagination.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Task, error)

	// Create persists a new task entity to the storage.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task entity in the storage.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
