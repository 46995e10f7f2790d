package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a workspace. It is the representative tenant
// resource: access to it is always decided through the ownership resolver,
// never by the task itself.
type Task struct {
	// ID is the task's unique identifier (UUIDv7).
	ID uuid.UUID
	// WorkspaceID is the workspace the task belongs to.
	WorkspaceID uuid.UUID
	// CreatedByID is the user who created the task.
	CreatedByID uuid.UUID
	// Title is the short summary of the task.
	Title string
	// Description is the optional longer body.
	Description string
	// Status is the task's lifecycle state.
	Status Status
	// CreatedAt is when the task was created.
	CreatedAt time.Time
	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time
	// DeletedAt marks the task as soft-deleted when set. Soft-deleted tasks
	// are invisible to every read path.
	DeletedAt *time.Time
}
