package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/workspaces/internal/metrics"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// workspaceUseCaseWithMetrics decorates WorkspaceUseCase with metrics
// instrumentation.
type workspaceUseCaseWithMetrics struct {
	next    WorkspaceUseCase
	metrics metrics.BusinessMetrics
}

// NewWorkspaceUseCaseWithMetrics wraps a WorkspaceUseCase with metrics recording.
func NewWorkspaceUseCaseWithMetrics(useCase WorkspaceUseCase, m metrics.BusinessMetrics) WorkspaceUseCase {
	return &workspaceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (w *workspaceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordOperation(ctx, "workspaces", operation, status)
	w.metrics.RecordDuration(ctx, "workspaces", operation, time.Since(start), status)
}

// Create records metrics for workspace creation operations.
func (w *workspaceUseCaseWithMetrics) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, slug string,
) (*workspacesDomain.Workspace, error) {
	start := time.Now()
	workspace, err := w.next.Create(ctx, userID, name, slug)
	w.record(ctx, "workspace_create", start, err)
	return workspace, err
}

// Get records metrics for workspace retrieval operations.
func (w *workspaceUseCaseWithMetrics) Get(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	start := time.Now()
	workspace, err := w.next.Get(ctx, slugOrID, userID)
	w.record(ctx, "workspace_get", start, err)
	return workspace, err
}

// List records metrics for workspace list operations.
func (w *workspaceUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Workspace, error) {
	start := time.Now()
	workspaces, err := w.next.List(ctx, userID, offset, limit)
	w.record(ctx, "workspace_list", start, err)
	return workspaces, err
}

// Delete records metrics for workspace deletion operations.
func (w *workspaceUseCaseWithMetrics) Delete(ctx context.Context, slugOrID string, userID uuid.UUID) error {
	start := time.Now()
	err := w.next.Delete(ctx, slugOrID, userID)
	w.record(ctx, "workspace_delete", start, err)
	return err
}

// AddMember records metrics for member addition operations.
func (w *workspaceUseCaseWithMetrics) AddMember(
	ctx context.Context,
	slugOrID string,
	actingUserID uuid.UUID,
	memberUserID uuid.UUID,
	role workspacesDomain.Role,
) (*workspacesDomain.Member, error) {
	start := time.Now()
	member, err := w.next.AddMember(ctx, slugOrID, actingUserID, memberUserID, role)
	w.record(ctx, "member_add", start, err)
	return member, err
}

// RemoveMember records metrics for member removal operations.
func (w *workspaceUseCaseWithMetrics) RemoveMember(
	ctx context.Context,
	slugOrID string,
	actingUserID, memberUserID uuid.UUID,
) error {
	start := time.Now()
	err := w.next.RemoveMember(ctx, slugOrID, actingUserID, memberUserID)
	w.record(ctx, "member_remove", start, err)
	return err
}

// ListMembers records metrics for member list operations.
func (w *workspaceUseCaseWithMetrics) ListMembers(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	start := time.Now()
	members, err := w.next.ListMembers(ctx, slugOrID, userID, offset, limit)
	w.record(ctx, "member_list", start, err)
	return members, err
}
