// Package repository implements data persistence for tasks. Repositories
// support both PostgreSQL and MySQL with soft deletion; every read excludes
// soft-deleted rows.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// PostgreSQLTaskRepository implements Task persistence for PostgreSQL databases.
type PostgreSQLTaskRepository struct {
	db *sql.DB
}

// NewPostgreSQLTaskRepository creates a new PostgreSQL Task repository instance.
func NewPostgreSQLTaskRepository(db *sql.DB) *PostgreSQLTaskRepository {
	return &PostgreSQLTaskRepository{db: db}
}

// Create inserts a new task into the PostgreSQL database.
func (p *PostgreSQLTaskRepository) Create(ctx context.Context, task *tasksDomain.Task) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tasks (id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		task.ID,
		task.WorkspaceID,
		task.CreatedByID,
		task.Title,
		task.Description,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
		task.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create task")
	}
	return nil
}

// Get retrieves a non-deleted task by its id.
func (p *PostgreSQLTaskRepository) Get(ctx context.Context, taskID uuid.UUID) (*tasksDomain.Task, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at
			  FROM tasks
			  WHERE id = $1 AND deleted_at IS NULL
			  LIMIT 1`

	return scanTask(querier.QueryRowContext(ctx, query, taskID))
}

// ListByWorkspace retrieves the non-deleted tasks of a workspace, ordered by
// creation time descending.
func (p *PostgreSQLTaskRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at
			  FROM tasks
			  WHERE workspace_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, workspaceID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tasks")
	}
	defer rows.Close()

	var tasks []*tasksDomain.Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tasks")
	}

	return tasks, nil
}

// Update replaces a task's mutable fields.
func (p *PostgreSQLTaskRepository) Update(ctx context.Context, task *tasksDomain.Task) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tasks
			  SET title = $1, description = $2, status = $3, updated_at = $4
			  WHERE id = $5 AND deleted_at IS NULL`

	_, err := querier.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update task")
	}
	return nil
}

// SoftDelete marks a task as deleted by setting the DeletedAt timestamp.
func (p *PostgreSQLTaskRepository) SoftDelete(ctx context.Context, taskID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tasks
			  SET deleted_at = $1, updated_at = $1
			  WHERE id = $2 AND deleted_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), taskID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete task")
	}

	return nil
}

// GetResource retrieves the ownership view of a non-deleted task for
// authorization checks.
func (p *PostgreSQLTaskRepository) GetResource(
	ctx context.Context,
	taskID uuid.UUID,
) (*authzDomain.Resource, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id
			  FROM tasks
			  WHERE id = $1 AND deleted_at IS NULL
			  LIMIT 1`

	var resource authzDomain.Resource
	err := querier.QueryRowContext(ctx, query, taskID).Scan(
		&resource.ID,
		&resource.WorkspaceID,
		&resource.CreatedByID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task resource")
	}

	return &resource, nil
}

// scanTask scans a single task row, mapping sql.ErrNoRows to ErrNotFound.
func scanTask(row *sql.Row) (*tasksDomain.Task, error) {
	var task tasksDomain.Task
	var statusName string
	err := row.Scan(
		&task.ID,
		&task.WorkspaceID,
		&task.CreatedByID,
		&task.Title,
		&task.Description,
		&statusName,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task")
	}

	status, err := tasksDomain.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	task.Status = status

	return &task, nil
}

// scanTaskRow scans a task from a multi-row result set.
func scanTaskRow(rows *sql.Rows) (*tasksDomain.Task, error) {
	var task tasksDomain.Task
	var statusName string
	err := rows.Scan(
		&task.ID,
		&task.WorkspaceID,
		&task.CreatedByID,
		&task.Title,
		&task.Description,
		&statusName,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.DeletedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan task")
	}

	status, err := tasksDomain.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	task.Status = status

	return &task, nil
}
