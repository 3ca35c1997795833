// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a single account that can authenticate and own tasks.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's unique login identifier.
	PasswordHash string    // The bcrypt hash of the user's password. Never serialized in responses or logged.
	IsActive     bool      // Inactive accounts keep their data but are refused access.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
