package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/workspaces/internal/metrics"
	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// taskUseCaseWithMetrics decorates TaskUseCase with metrics instrumentation.
type taskUseCaseWithMetrics struct {
	next    TaskUseCase
	metrics metrics.BusinessMetrics
}

// NewTaskUseCaseWithMetrics wraps a TaskUseCase with metrics recording.
func NewTaskUseCaseWithMetrics(useCase TaskUseCase, m metrics.BusinessMetrics) TaskUseCase {
	return &taskUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (t *taskUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tasks", operation, status)
	t.metrics.RecordDuration(ctx, "tasks", operation, time.Since(start), status)
}

// Create records metrics for task creation operations.
func (t *taskUseCaseWithMetrics) Create(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	title, description string,
) (*tasksDomain.Task, error) {
	start := time.Now()
	task, err := t.next.Create(ctx, slugOrID, userID, title, description)
	t.record(ctx, "task_create", start, err)
	return task, err
}

// Get records metrics for task retrieval operations.
func (t *taskUseCaseWithMetrics) Get(ctx context.Context, taskID, userID uuid.UUID) (*tasksDomain.Task, error) {
	start := time.Now()
	task, err := t.next.Get(ctx, taskID, userID)
	t.record(ctx, "task_get", start, err)
	return task, err
}

// List records metrics for task list operations.
func (t *taskUseCaseWithMetrics) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	start := time.Now()
	tasks, err := t.next.List(ctx, slugOrID, userID, offset, limit)
	t.record(ctx, "task_list", start, err)
	return tasks, err
}

// Update records metrics for task update operations.
func (t *taskUseCaseWithMetrics) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	title, description string,
	status tasksDomain.Status,
) (*tasksDomain.Task, error) {
	start := time.Now()
	task, err := t.next.Update(ctx, taskID, userID, title, description, status)
	t.record(ctx, "task_update", start, err)
	return task, err
}

// Delete records metrics for task deletion operations.
func (t *taskUseCaseWithMetrics) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	start := time.Now()
	err := t.next.Delete(ctx, taskID, userID)
	t.record(ctx, "task_delete", start, err)
	return err
}
