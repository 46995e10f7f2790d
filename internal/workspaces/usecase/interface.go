// Package usecase implements business logic for workspace and membership
// management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// WorkspaceRepository defines the interface for Workspace persistence
// operations. All read operations exclude soft-deleted workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *workspacesDomain.Workspace) error
	Get(ctx context.Context, workspaceID uuid.UUID) (*workspacesDomain.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*workspacesDomain.Workspace, error)
	ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*workspacesDomain.Workspace, error)
	SoftDelete(ctx context.Context, workspaceID uuid.UUID) error
}

// MemberRepository defines the interface for workspace membership persistence
// operations. GetActiveMember only returns rows whose LeftAt is unset.
type MemberRepository interface {
	Create(ctx context.Context, member *workspacesDomain.Member) error
	GetActiveMember(ctx context.Context, workspaceID, userID uuid.UUID) (*workspacesDomain.Member, error)
	List(ctx context.Context, workspaceID uuid.UUID, offset, limit int) ([]*workspacesDomain.Member, error)
	SetLeftAt(ctx context.Context, workspaceID, userID uuid.UUID, leftAt time.Time) error
}

// WorkspaceUseCase defines the interface for workspace management business
// logic. Every operation takes the acting user and enforces access through
// the ownership resolver; denied access on reads is reported as not found.
type WorkspaceUseCase interface {
	Create(ctx context.Context, userID uuid.UUID, name, slug string) (*workspacesDomain.Workspace, error)
	Get(ctx context.Context, slugOrID string, userID uuid.UUID) (*workspacesDomain.Workspace, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*workspacesDomain.Workspace, error)
	Delete(ctx context.Context, slugOrID string, userID uuid.UUID) error
	AddMember(
		ctx context.Context,
		slugOrID string,
		actingUserID uuid.UUID,
		memberUserID uuid.UUID,
		role workspacesDomain.Role,
	) (*workspacesDomain.Member, error)
	RemoveMember(ctx context.Context, slugOrID string, actingUserID, memberUserID uuid.UUID) error
	ListMembers(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
		offset, limit int,
	) ([]*workspacesDomain.Member, error)
}
