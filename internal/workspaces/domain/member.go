package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a user's membership in a workspace.
type Member struct {
	// ID is the unique identifier for the membership row.
	ID uuid.UUID
	// WorkspaceID is the workspace the membership belongs to.
	WorkspaceID uuid.UUID
	// UserID is the member's user identifier (assigned by the upstream
	// identity provider).
	UserID uuid.UUID
	// Role is the member's privilege level within the workspace.
	Role Role
	// JoinedAt is the UTC timestamp when the membership became active.
	JoinedAt time.Time
	// LeftAt marks when the member left the workspace (nil while active).
	// A set LeftAt means the user is treated as a non-member everywhere.
	LeftAt *time.Time
}

// IsActive reports whether the membership currently grants any access.
func (m *Member) IsActive() bool {
	return m.LeftAt == nil
}
