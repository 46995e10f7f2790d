package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace represents a tenant boundary for tasks and credentials.
type Workspace struct {
	// ID is the unique identifier for the workspace.
	ID uuid.UUID
	// Name is the human-readable workspace name.
	Name string
	// Slug is the URL-safe unique identifier used in routes.
	Slug string
	// OwnerID is the user who created the workspace. The owner holds implicit
	// admin capability even without a membership row.
	OwnerID uuid.UUID
	// CreatedAt is the UTC timestamp when the workspace was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time
	// DeletedAt marks when the workspace was soft-deleted (nil if active).
	// Soft-deleted workspaces are invisible to every read path.
	DeletedAt *time.Time
}
