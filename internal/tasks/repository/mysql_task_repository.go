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

// MySQLTaskRepository implements Task persistence for MySQL databases.
// UUIDs are stored as binary(16).
type MySQLTaskRepository struct {
	db *sql.DB
}

// NewMySQLTaskRepository creates a new MySQL Task repository instance.
func NewMySQLTaskRepository(db *sql.DB) *MySQLTaskRepository {
	return &MySQLTaskRepository{db: db}
}

// Create inserts a new task into the MySQL database.
func (m *MySQLTaskRepository) Create(ctx context.Context, task *tasksDomain.Task) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tasks (id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := task.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal task id")
	}

	workspaceID, err := task.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	createdByID, err := task.CreatedByID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal created by id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		workspaceID,
		createdByID,
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
func (m *MySQLTaskRepository) Get(ctx context.Context, taskID uuid.UUID) (*tasksDomain.Task, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at
			  FROM tasks
			  WHERE id = ? AND deleted_at IS NULL
			  LIMIT 1`

	id, err := taskID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal task id")
	}

	var task tasksDomain.Task
	var taskIDRaw, workspaceIDRaw, createdByIDRaw []byte
	var statusName string
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&taskIDRaw,
		&workspaceIDRaw,
		&createdByIDRaw,
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

	if err := fillMySQLTask(&task, taskIDRaw, workspaceIDRaw, createdByIDRaw, statusName); err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByWorkspace retrieves the non-deleted tasks of a workspace, ordered by
// creation time descending.
func (m *MySQLTaskRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id, title, description, status, created_at, updated_at, deleted_at
			  FROM tasks
			  WHERE workspace_id = ? AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	id, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	rows, err := querier.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tasks")
	}
	defer rows.Close()

	var tasks []*tasksDomain.Task
	for rows.Next() {
		var task tasksDomain.Task
		var taskIDRaw, workspaceIDRaw, createdByIDRaw []byte
		var statusName string
		err := rows.Scan(
			&taskIDRaw,
			&workspaceIDRaw,
			&createdByIDRaw,
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

		if err := fillMySQLTask(&task, taskIDRaw, workspaceIDRaw, createdByIDRaw, statusName); err != nil {
			return nil, err
		}

		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tasks")
	}

	return tasks, nil
}

// Update replaces a task's mutable fields.
func (m *MySQLTaskRepository) Update(ctx context.Context, task *tasksDomain.Task) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tasks
			  SET title = ?, description = ?, status = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := task.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal task id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		task.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update task")
	}

	return nil
}

// SoftDelete marks a task as deleted by setting the DeletedAt timestamp.
func (m *MySQLTaskRepository) SoftDelete(ctx context.Context, taskID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tasks
			  SET deleted_at = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := taskID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal task id")
	}

	now := time.Now().UTC()
	_, err = querier.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete task")
	}

	return nil
}

// GetResource retrieves the ownership view of a non-deleted task for
// authorization checks.
func (m *MySQLTaskRepository) GetResource(
	ctx context.Context,
	taskID uuid.UUID,
) (*authzDomain.Resource, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id
			  FROM tasks
			  WHERE id = ? AND deleted_at IS NULL
			  LIMIT 1`

	id, err := taskID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal task id")
	}

	var taskIDRaw, workspaceIDRaw, createdByIDRaw []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(&taskIDRaw, &workspaceIDRaw, &createdByIDRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task resource")
	}

	var resource authzDomain.Resource
	if err := resource.ID.UnmarshalBinary(taskIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal task id")
	}
	if err := resource.WorkspaceID.UnmarshalBinary(workspaceIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := resource.CreatedByID.UnmarshalBinary(createdByIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created by id")
	}

	return &resource, nil
}

// fillMySQLTask decodes the binary UUID columns and status name into the task.
func fillMySQLTask(task *tasksDomain.Task, id, workspaceID, createdByID []byte, statusName string) error {
	if err := task.ID.UnmarshalBinary(id); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal task id")
	}
	if err := task.WorkspaceID.UnmarshalBinary(workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := task.CreatedByID.UnmarshalBinary(createdByID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal created by id")
	}

	status, err := tasksDomain.ParseStatus(statusName)
	if err != nil {
		return err
	}
	task.Status = status

	return nil
}
