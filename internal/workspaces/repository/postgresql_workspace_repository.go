// Package repository implements data persistence for workspaces and
// memberships. Repositories support both PostgreSQL and MySQL with soft
// deletion; every read excludes soft-deleted rows.
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

// PostgreSQLWorkspaceRepository implements Workspace persistence for
// PostgreSQL databases.
type PostgreSQLWorkspaceRepository struct {
	db *sql.DB
}

// NewPostgreSQLWorkspaceRepository creates a new PostgreSQL Workspace
// repository instance.
func NewPostgreSQLWorkspaceRepository(db *sql.DB) *PostgreSQLWorkspaceRepository {
	return &PostgreSQLWorkspaceRepository{db: db}
}

// Create inserts a new workspace into the PostgreSQL database.
func (p *PostgreSQLWorkspaceRepository) Create(
	ctx context.Context,
	workspace *workspacesDomain.Workspace,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO workspaces (id, name, slug, owner_id, created_at, updated_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		workspace.ID,
		workspace.Name,
		workspace.Slug,
		workspace.OwnerID,
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
func (p *PostgreSQLWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, slug, owner_id, created_at, updated_at, deleted_at
			  FROM workspaces
			  WHERE id = $1 AND deleted_at IS NULL
			  LIMIT 1`

	return scanWorkspace(querier.QueryRowContext(ctx, query, workspaceID))
}

// GetBySlug retrieves a non-deleted workspace by its slug.
func (p *PostgreSQLWorkspaceRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, slug, owner_id, created_at, updated_at, deleted_at
			  FROM workspaces
			  WHERE slug = $1 AND deleted_at IS NULL
			  LIMIT 1`

	return scanWorkspace(querier.QueryRowContext(ctx, query, slug))
}

// ListForUser retrieves the non-deleted workspaces the user owns or holds an
// active membership in, ordered by creation time descending.
func (p *PostgreSQLWorkspaceRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT w.id, w.name, w.slug, w.owner_id, w.created_at, w.updated_at, w.deleted_at
			  FROM workspaces w
			  LEFT JOIN workspace_members m
				ON m.workspace_id = w.id AND m.user_id = $1 AND m.left_at IS NULL
			  WHERE w.deleted_at IS NULL AND (w.owner_id = $1 OR m.id IS NOT NULL)
			  ORDER BY w.created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list workspaces")
	}
	defer rows.Close()

	var workspaces []*workspacesDomain.Workspace
	for rows.Next() {
		var workspace workspacesDomain.Workspace
		err := rows.Scan(
			&workspace.ID,
			&workspace.Name,
			&workspace.Slug,
			&workspace.OwnerID,
			&workspace.CreatedAt,
			&workspace.UpdatedAt,
			&workspace.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan workspace")
		}
		workspaces = append(workspaces, &workspace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate workspaces")
	}

	return workspaces, nil
}

// SoftDelete marks a workspace as deleted by setting the DeletedAt timestamp.
func (p *PostgreSQLWorkspaceRepository) SoftDelete(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE workspaces
			  SET deleted_at = $1, updated_at = $1
			  WHERE id = $2 AND deleted_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), workspaceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete workspace")
	}

	return nil
}

// scanWorkspace scans a single workspace row, mapping sql.ErrNoRows to
// ErrNotFound.
func scanWorkspace(row *sql.Row) (*workspacesDomain.Workspace, error) {
	var workspace workspacesDomain.Workspace
	err := row.Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Slug,
		&workspace.OwnerID,
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

	return &workspace, nil
}
