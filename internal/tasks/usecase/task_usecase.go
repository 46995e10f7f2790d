package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	authzUsecase "github.com/allisson/workspaces/internal/authz/usecase"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// taskUseCase implements the TaskUseCase interface.
type taskUseCase struct {
	txManager database.TxManager
	taskRepo  TaskRepository
	resolver  authzUsecase.OwnershipResolver
}

// NewTaskUseCase creates a new task use case instance with the provided
// dependencies.
func NewTaskUseCase(
	txManager database.TxManager,
	taskRepo TaskRepository,
	resolver authzUsecase.OwnershipResolver,
) TaskUseCase {
	return &taskUseCase{
		txManager: txManager,
		taskRepo:  taskRepo,
		resolver:  resolver,
	}
}

// Create creates a new task in the workspace. Requires write capability; new
// tasks start in the todo status.
func (t *taskUseCase) Create(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	title, description string,
) (*tasksDomain.Task, error) {
	access, err := t.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess {
		return nil, tasksDomain.ErrTaskNotFound
	}
	if !access.CanWrite {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	task := &tasksDomain.Task{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: access.WorkspaceID,
		CreatedByID: userID,
		Title:       title,
		Description: description,
		Status:      tasksDomain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return t.taskRepo.Create(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Get retrieves a task by id for a user with read access to its workspace.
// Missing tasks and denied access produce the same not-found error.
func (t *taskUseCase) Get(ctx context.Context, taskID, userID uuid.UUID) (*tasksDomain.Task, error) {
	task, err := t.taskRepo.Get(ctx, taskID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, tasksDomain.ErrTaskNotFound
		}
		return nil, err
	}

	access, err := t.resolver.ValidateWorkspaceAccess(ctx, task.WorkspaceID.String(), userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess || !access.CanRead {
		return nil, tasksDomain.ErrTaskNotFound
	}

	return task, nil
}

// List retrieves the tasks of a workspace for a user with read access.
func (t *taskUseCase) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	access, err := t.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess || !access.CanRead {
		return nil, tasksDomain.ErrTaskNotFound
	}

	return t.taskRepo.ListByWorkspace(ctx, access.WorkspaceID, offset, limit)
}

// Update replaces a task's title, description, and status. The creator may
// always update their task; admins and the workspace owner may override.
func (t *taskUseCase) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	title, description string,
	status tasksDomain.Status,
) (*tasksDomain.Task, error) {
	if !status.IsValid() {
		return nil, tasksDomain.ErrInvalidStatus
	}

	decision, err := t.resolver.ValidateOwnership(
		ctx,
		authzDomain.ResourceKindTask,
		taskID,
		userID,
		authzDomain.Options{AllowAdminOverride: true},
	)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		if decision.Reason == authzDomain.ReasonNotFound {
			return nil, tasksDomain.ErrTaskNotFound
		}
		return nil, apperrors.ErrForbidden
	}

	task, err := t.taskRepo.Get(ctx, taskID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, tasksDomain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	err = t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return t.taskRepo.Update(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Delete soft-deletes a task. Only the task's creator may delete it; admin
// override does not apply.
func (t *taskUseCase) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	decision, err := t.resolver.ValidateOwnership(
		ctx,
		authzDomain.ResourceKindTask,
		taskID,
		userID,
		authzDomain.Options{},
	)
	if err != nil {
		return err
	}
	if !decision.HasAccess {
		if decision.Reason == authzDomain.ReasonNotFound {
			return tasksDomain.ErrTaskNotFound
		}
		return apperrors.ErrForbidden
	}

	return t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return t.taskRepo.SoftDelete(txCtx, taskID)
	})
}
