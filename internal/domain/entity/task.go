package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates the lifecycle states a task can be in.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFailed:
		return true
	}

	return false
}

// Task is a unit of work owned by exactly one user. The owner is set at
// creation and never reassigned.
type Task struct {
	ID          uuid.UUID  // The unique identifier for the task.
	OwnerID     uuid.UUID  // Links the task to the User that created it. Immutable.
	Title       string     // Short human-readable title.
	Description string     // Optional longer description.
	Status      TaskStatus // Current lifecycle state, defaults to pending.
	CreatedAt   time.Time  // Timestamp of when this task was created.
	UpdatedAt   time.Time  // Timestamp of the last modification to this task.
}

// OwnedBy reports whether the task belongs to the given user. Every read,
// update and delete path must pass this check before touching the task.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}
