package domain

import (
	"github.com/google/uuid"

	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// Resource is the ownership view of a tenant resource: the minimum a resolver
// needs to decide access without knowing anything about the resource's
// payload. Lookups that produce it must already exclude soft-deleted rows.
type Resource struct {
	// ID is the resource's unique identifier.
	ID uuid.UUID
	// WorkspaceID is the workspace the resource belongs to.
	WorkspaceID uuid.UUID
	// CreatedByID is the user who created the resource (its owner).
	CreatedByID uuid.UUID
}

// Options controls per-call-site ownership resolution behavior.
type Options struct {
	// AllowAdminOverride lets an ADMIN or OWNER role act on a resource they
	// did not create. It is opt-in: call sites that must enforce strict
	// per-resource ownership leave it false.
	AllowAdminOverride bool
}

// AccessDecision is the immutable result of a single-resource ownership check.
// The route layer consumes HasAccess to pick a response code; the decision
// itself never chooses status codes.
type AccessDecision struct {
	// HasAccess reports whether the user may act on the resource.
	HasAccess bool
	// IsOwner reports whether access was granted through creatorship.
	IsOwner bool
	// CanModify reports whether the user may mutate the resource.
	CanModify bool
	// Reason records how the decision was reached, for internal use.
	Reason Reason
}

// WorkspaceAccess is the result of a workspace-scoped access check, deriving
// capabilities from the user's effective role.
type WorkspaceAccess struct {
	// HasAccess reports whether the user is an active member or the owner.
	HasAccess bool
	// CanRead reports whether the user may read workspace resources.
	CanRead bool
	// CanWrite reports whether the user may create and modify resources.
	CanWrite bool
	// CanAdmin reports whether the user may manage membership and settings.
	CanAdmin bool
	// Role is the user's effective role; zero when HasAccess is false.
	Role workspacesDomain.Role
	// WorkspaceID is the resolved workspace; zero when HasAccess is false.
	WorkspaceID uuid.UUID
}
