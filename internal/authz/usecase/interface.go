// Package usecase implements the ownership and workspace-access resolution
// logic that gates every read or mutation of a tenant resource.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// ResourceRepository provides the ownership view of a resource by kind and id.
// Implementations must already exclude soft-deleted rows: the resolver treats
// a soft-deleted resource identically to a non-existent one.
type ResourceRepository interface {
	GetResource(ctx context.Context, kind authzDomain.ResourceKind, resourceID uuid.UUID) (*authzDomain.Resource, error)
}

// WorkspaceRepository defines the workspace lookups the resolver needs.
// Both lookups exclude soft-deleted workspaces.
type WorkspaceRepository interface {
	Get(ctx context.Context, workspaceID uuid.UUID) (*workspacesDomain.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*workspacesDomain.Workspace, error)
}

// MemberRepository defines the membership lookup the resolver needs.
// GetActiveMember returns only memberships whose LeftAt is unset.
type MemberRepository interface {
	GetActiveMember(ctx context.Context, workspaceID, userID uuid.UUID) (*workspacesDomain.Member, error)
}

// OwnershipResolver decides whether an acting user may access a resource or a
// workspace. Decisions are produced fresh per call and must not be cached;
// membership can change between requests. Denied outcomes are decisions, not
// errors: an error return means the lookup itself failed.
type OwnershipResolver interface {
	ValidateOwnership(
		ctx context.Context,
		kind authzDomain.ResourceKind,
		resourceID uuid.UUID,
		userID uuid.UUID,
		opts authzDomain.Options,
	) (authzDomain.AccessDecision, error)

	ValidateWorkspaceAccess(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
	) (authzDomain.WorkspaceAccess, error)
}
