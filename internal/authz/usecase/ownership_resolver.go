package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// ownershipResolver implements the OwnershipResolver interface.
//
// Resolution performs exactly one resource lookup plus at most one workspace
// and one membership lookup, all read-only and executed inside a single
// read-only transaction so the decision reflects one consistent snapshot.
// Lookup failures propagate as errors without retries; retrying would
// observably delay a deny.
type ownershipResolver struct {
	txManager     database.TxManager
	resourceRepo  ResourceRepository
	workspaceRepo WorkspaceRepository
	memberRepo    MemberRepository
}

// NewOwnershipResolver creates an OwnershipResolver with the provided lookups.
func NewOwnershipResolver(
	txManager database.TxManager,
	resourceRepo ResourceRepository,
	workspaceRepo WorkspaceRepository,
	memberRepo MemberRepository,
) OwnershipResolver {
	return &ownershipResolver{
		txManager:     txManager,
		resourceRepo:  resourceRepo,
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
	}
}

// ValidateOwnership decides whether userID may act on the identified resource.
//
// Order of evaluation: resource existence, then creatorship, then (only when
// the call site opted in) an admin override derived from the user's effective
// role in the resource's workspace. A missing or soft-deleted resource yields
// a NotFound decision indistinguishable from one that never existed.
func (o *ownershipResolver) ValidateOwnership(
	ctx context.Context,
	kind authzDomain.ResourceKind,
	resourceID uuid.UUID,
	userID uuid.UUID,
	opts authzDomain.Options,
) (authzDomain.AccessDecision, error) {
	var decision authzDomain.AccessDecision

	err := o.txManager.WithReadTx(ctx, func(txCtx context.Context) error {
		resource, err := o.resourceRepo.GetResource(txCtx, kind, resourceID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				decision = authzDomain.AccessDecision{Reason: authzDomain.ReasonNotFound}
				return nil
			}
			return err
		}

		if resource.CreatedByID == userID {
			decision = authzDomain.AccessDecision{
				HasAccess: true,
				IsOwner:   true,
				CanModify: true,
				Reason:    authzDomain.ReasonOwner,
			}
			return nil
		}

		if opts.AllowAdminOverride {
			role, found, err := o.effectiveRole(txCtx, resource.WorkspaceID, userID)
			if err != nil {
				return err
			}
			if found && role.CanAdmin() {
				decision = authzDomain.AccessDecision{
					HasAccess: true,
					CanModify: true,
					Reason:    authzDomain.ReasonAdminOverride,
				}
				return nil
			}
		}

		decision = authzDomain.AccessDecision{Reason: authzDomain.ReasonNotOwner}
		return nil
	})
	if err != nil {
		return authzDomain.AccessDecision{}, err
	}

	return decision, nil
}

// ValidateWorkspaceAccess resolves userID's capabilities inside a workspace
// addressed by slug or UUID.
//
// A workspace that does not exist, is soft-deleted, or where the user holds no
// active membership yields HasAccess=false with no distinguishing detail.
func (o *ownershipResolver) ValidateWorkspaceAccess(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (authzDomain.WorkspaceAccess, error) {
	var access authzDomain.WorkspaceAccess

	err := o.txManager.WithReadTx(ctx, func(txCtx context.Context) error {
		workspace, err := o.getWorkspace(txCtx, slugOrID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}

		role, found, err := o.resolveRole(txCtx, workspace, userID)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		access = authzDomain.WorkspaceAccess{
			HasAccess:   true,
			CanRead:     role.CanRead(),
			CanWrite:    role.CanWrite(),
			CanAdmin:    role.CanAdmin(),
			Role:        role,
			WorkspaceID: workspace.ID,
		}
		return nil
	})
	if err != nil {
		return authzDomain.WorkspaceAccess{}, err
	}

	return access, nil
}

// getWorkspace resolves a workspace addressed by slug or UUID. UUID parse is
// tried first; anything that is not a UUID is treated as a slug.
func (o *ownershipResolver) getWorkspace(
	ctx context.Context,
	slugOrID string,
) (*workspacesDomain.Workspace, error) {
	if workspaceID, err := uuid.Parse(slugOrID); err == nil {
		return o.workspaceRepo.Get(ctx, workspaceID)
	}
	return o.workspaceRepo.GetBySlug(ctx, slugOrID)
}

// effectiveRole resolves the role userID holds in the given workspace,
// loading the workspace first to check implicit ownership.
func (o *ownershipResolver) effectiveRole(
	ctx context.Context,
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (workspacesDomain.Role, bool, error) {
	workspace, err := o.workspaceRepo.Get(ctx, workspaceID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return o.resolveRole(ctx, workspace, userID)
}

// resolveRole determines the user's effective role in a loaded workspace.
// The workspace owner holds an implicit OWNER role even without a membership
// row; everyone else needs an active membership (LeftAt unset).
func (o *ownershipResolver) resolveRole(
	ctx context.Context,
	workspace *workspacesDomain.Workspace,
	userID uuid.UUID,
) (workspacesDomain.Role, bool, error) {
	if workspace.OwnerID == userID {
		return workspacesDomain.RoleOwner, true, nil
	}

	member, err := o.memberRepo.GetActiveMember(ctx, workspace.ID, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return member.Role, true, nil
}
