package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// MySQLWorkspaceRepository implements Workspace persistence for MySQL
// databases. UUIDs are stored as binary(16).
type MySQLWorkspaceRepository struct {
	db *sql.DB
}

// NewMySQLWorkspaceRepository creates a new MySQL Workspace repository
// instance.
func NewMySQLWorkspaceRepository(db *sql.DB) *MySQLWorkspaceRepository {
	return &MySQLWorkspaceRepository{db: db}
}

// Create inserts a new workspace into the MySQL database.
func (m *MySQLWorkspaceRepository) Create(
	ctx context.Context,
	workspace *workspacesDomain.Workspace,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO workspaces (id, name, slug, owner_id, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := workspace.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	ownerID, err := workspace.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		workspace.Name,
		workspace.Slug,
		ownerID,
		workspace.CreatedAt,
		workspace.UpdatedAt,
		workspace.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create workspace")
	}

	return nil
}

// Get retrieves a non-deleted workspace by its id.
func (m *MySQLWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, slug, owner_id, created_at, updated_at, deleted_at
			  FROM workspaces
			  WHERE id = ? AND deleted_at IS NULL
			  LIMIT 1`

	id, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	return scanMySQLWorkspace(querier.QueryRowContext(ctx, query, id))
}

// GetBySlug retrieves a non-deleted workspace by its slug.
func (m *MySQLWorkspaceRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, slug, owner_id, created_at, updated_at, deleted_at
			  FROM workspaces
			  WHERE slug = ? AND deleted_at IS NULL
			  LIMIT 1`

	return scanMySQLWorkspace(querier.QueryRowContext(ctx, query, slug))
}

// ListForUser retrieves the non-deleted workspaces the user owns or holds an
// active membership in, ordered by creation time descending.
func (m *MySQLWorkspaceRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT w.id, w.name, w.slug, w.owner_id, w.created_at, w.updated_at, w.deleted_at
			  FROM workspaces w
			  LEFT JOIN workspace_members wm
				ON wm.workspace_id = w.id AND wm.user_id = ? AND wm.left_at IS NULL
			  WHERE w.deleted_at IS NULL AND (w.owner_id = ? OR wm.id IS NOT NULL)
			  ORDER BY w.created_at DESC
			  LIMIT ? OFFSET ?`

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	rows, err := querier.QueryContext(ctx, query, id, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list workspaces")
	}
	defer rows.Close()

	var workspaces []*workspacesDomain.Workspace
	for rows.Next() {
		var workspace workspacesDomain.Workspace
		var workspaceID, ownerID []byte
		err := rows.Scan(
			&workspaceID,
			&workspace.Name,
			&workspace.Slug,
			&ownerID,
			&workspace.CreatedAt,
			&workspace.UpdatedAt,
			&workspace.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan workspace")
		}

		if err := workspace.ID.UnmarshalBinary(workspaceID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal workspace id")
		}
		if err := workspace.OwnerID.UnmarshalBinary(ownerID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
		}

		workspaces = append(workspaces, &workspace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate workspaces")
	}

	return workspaces, nil
}

// SoftDelete marks a workspace as deleted by setting the DeletedAt timestamp.
func (m *MySQLWorkspaceRepository) SoftDelete(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE workspaces
			  SET deleted_at = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	now := time.Now().UTC()
	_, err = querier.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete workspace")
	}

	return nil
}

// scanMySQLWorkspace scans a single workspace row with binary UUID columns,
// mapping sql.ErrNoRows to ErrNotFound.
func scanMySQLWorkspace(row *sql.Row) (*workspacesDomain.Workspace, error) {
	var workspace workspacesDomain.Workspace
	var workspaceID, ownerID []byte
	err := row.Scan(
		&workspaceID,
		&workspace.Name,
		&workspace.Slug,
		&ownerID,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
		&workspace.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get workspace")
	}

	if err := workspace.ID.UnmarshalBinary(workspaceID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := workspace.OwnerID.UnmarshalBinary(ownerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}

	return &workspace, nil
}
