// Package usecase implements business logic for task management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// TaskRepository defines the interface for Task persistence operations.
// All read operations exclude soft-deleted tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *tasksDomain.Task) error
	Get(ctx context.Context, taskID uuid.UUID) (*tasksDomain.Task, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, offset, limit int) ([]*tasksDomain.Task, error)
	Update(ctx context.Context, task *tasksDomain.Task) error
	SoftDelete(ctx context.Context, taskID uuid.UUID) error
}

// TaskUseCase defines the interface for task management business logic.
// Reads require workspace read access; updates allow admin override; deletes
// enforce strict creator ownership.
type TaskUseCase interface {
	Create(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
		title, description string,
	) (*tasksDomain.Task, error)
	Get(ctx context.Context, taskID, userID uuid.UUID) (*tasksDomain.Task, error)
	List(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
		offset, limit int,
	) ([]*tasksDomain.Task, error)
	Update(
		ctx context.Context,
		taskID, userID uuid.UUID,
		title, description string,
		status tasksDomain.Status,
	) (*tasksDomain.Task, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
}
