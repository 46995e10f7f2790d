package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzUsecase "github.com/allisson/workspaces/internal/authz/usecase"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// workspaceUseCase implements the WorkspaceUseCase interface.
type workspaceUseCase struct {
	txManager     database.TxManager
	workspaceRepo WorkspaceRepository
	memberRepo    MemberRepository
	resolver      authzUsecase.OwnershipResolver
}

// NewWorkspaceUseCase creates a new workspace use case instance with the
// provided dependencies.
func NewWorkspaceUseCase(
	txManager database.TxManager,
	workspaceRepo WorkspaceRepository,
	memberRepo MemberRepository,
	resolver authzUsecase.OwnershipResolver,
) WorkspaceUseCase {
	return &workspaceUseCase{
		txManager:     txManager,
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		resolver:      resolver,
	}
}

// Create creates a new workspace owned by the acting user. The owner needs no
// membership row; ownership grants implicit admin capability.
func (w *workspaceUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, slug string,
) (*workspacesDomain.Workspace, error) {
	existing, err := w.workspaceRepo.GetBySlug(ctx, slug)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, workspacesDomain.ErrSlugAlreadyExists
	}

	now := time.Now().UTC()
	workspace := &workspacesDomain.Workspace{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Slug:      slug,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = w.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return w.workspaceRepo.Create(txCtx, workspace)
	})
	if err != nil {
		return nil, err
	}

	return workspace, nil
}

// Get retrieves a workspace by slug or id for a user with read access.
// Denied access and missing workspace produce the same not-found error.
func (w *workspaceUseCase) Get(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	access, err := w.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess || !access.CanRead {
		return nil, workspacesDomain.ErrWorkspaceNotFound
	}

	return w.workspaceRepo.Get(ctx, access.WorkspaceID)
}

// List retrieves the workspaces the user owns or is an active member of.
func (w *workspaceUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Workspace, error) {
	return w.workspaceRepo.ListForUser(ctx, userID, offset, limit)
}

// Delete soft-deletes a workspace. Only the workspace owner may delete it;
// admins get forbidden, everyone else sees not found.
func (w *workspaceUseCase) Delete(ctx context.Context, slugOrID string, userID uuid.UUID) error {
	access, err := w.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return err
	}
	if !access.HasAccess {
		return workspacesDomain.ErrWorkspaceNotFound
	}
	if access.Role != workspacesDomain.RoleOwner {
		return apperrors.ErrForbidden
	}

	return w.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return w.workspaceRepo.SoftDelete(txCtx, access.WorkspaceID)
	})
}

// AddMember adds a user to the workspace with the given role. Requires admin
// capability on the workspace.
func (w *workspaceUseCase) AddMember(
	ctx context.Context,
	slugOrID string,
	actingUserID uuid.UUID,
	memberUserID uuid.UUID,
	role workspacesDomain.Role,
) (*workspacesDomain.Member, error) {
	if !role.IsValid() {
		return nil, workspacesDomain.ErrInvalidRole
	}

	access, err := w.resolver.ValidateWorkspaceAccess(ctx, slugOrID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess {
		return nil, workspacesDomain.ErrWorkspaceNotFound
	}
	if !access.CanAdmin {
		return nil, apperrors.ErrForbidden
	}

	existing, err := w.memberRepo.GetActiveMember(ctx, access.WorkspaceID, memberUserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, workspacesDomain.ErrMemberAlreadyExists
	}

	member := &workspacesDomain.Member{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: access.WorkspaceID,
		UserID:      memberUserID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}

	err = w.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return w.memberRepo.Create(txCtx, member)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember marks a member as departed by setting LeftAt. The row is kept;
// a departed member is treated as a non-member everywhere. Requires admin
// capability; the workspace owner cannot be removed.
func (w *workspaceUseCase) RemoveMember(
	ctx context.Context,
	slugOrID string,
	actingUserID, memberUserID uuid.UUID,
) error {
	access, err := w.resolver.ValidateWorkspaceAccess(ctx, slugOrID, actingUserID)
	if err != nil {
		return err
	}
	if !access.HasAccess {
		return workspacesDomain.ErrWorkspaceNotFound
	}
	if !access.CanAdmin {
		return apperrors.ErrForbidden
	}

	workspace, err := w.workspaceRepo.Get(ctx, access.WorkspaceID)
	if err != nil {
		return err
	}
	if workspace.OwnerID == memberUserID {
		return workspacesDomain.ErrCannotRemoveOwner
	}

	if _, err := w.memberRepo.GetActiveMember(ctx, access.WorkspaceID, memberUserID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return workspacesDomain.ErrMemberNotFound
		}
		return err
	}

	return w.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return w.memberRepo.SetLeftAt(txCtx, access.WorkspaceID, memberUserID, time.Now().UTC())
	})
}

// ListMembers retrieves the active members of a workspace for a user with
// read access.
func (w *workspaceUseCase) ListMembers(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	access, err := w.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess || !access.CanRead {
		return nil, workspacesDomain.ErrWorkspaceNotFound
	}

	return w.memberRepo.List(ctx, access.WorkspaceID, offset, limit)
}
