// Package repository implements data persistence for workspace credentials.
// Repositories support both PostgreSQL and MySQL with soft deletion; every
// read excludes soft-deleted rows. Envelopes are stored as opaque text.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
)

// PostgreSQLCredentialRepository implements Credential persistence for
// PostgreSQL databases.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL Credential repository instance.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// Create inserts a new credential into the PostgreSQL database.
func (p *PostgreSQLCredentialRepository) Create(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.WorkspaceID,
		credential.CreatedByID,
		credential.Field,
		credential.Envelope,
		credential.CreatedAt,
		credential.UpdatedAt,
		credential.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// GetByField retrieves a workspace's non-deleted credential by field name.
func (p *PostgreSQLCredentialRepository) GetByField(
	ctx context.Context,
	workspaceID uuid.UUID,
	field string,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at
			  FROM credentials
			  WHERE workspace_id = $1 AND field = $2 AND deleted_at IS NULL
			  LIMIT 1`

	var credential credentialsDomain.Credential
	err := querier.QueryRowContext(ctx, query, workspaceID, field).Scan(
		&credential.ID,
		&credential.WorkspaceID,
		&credential.CreatedByID,
		&credential.Field,
		&credential.Envelope,
		&credential.CreatedAt,
		&credential.UpdatedAt,
		&credential.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	return &credential, nil
}

// ListByWorkspace retrieves the non-deleted credentials of a workspace,
// ordered by field name.
func (p *PostgreSQLCredentialRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at
			  FROM credentials
			  WHERE workspace_id = $1 AND deleted_at IS NULL
			  ORDER BY field ASC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, workspaceID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer rows.Close()

	var credentials []*credentialsDomain.Credential
	for rows.Next() {
		var credential credentialsDomain.Credential
		err := rows.Scan(
			&credential.ID,
			&credential.WorkspaceID,
			&credential.CreatedByID,
			&credential.Field,
			&credential.Envelope,
			&credential.CreatedAt,
			&credential.UpdatedAt,
			&credential.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &credential)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// Update replaces a credential's envelope. Rotation is a wholesale replacement
// of the stored envelope text.
func (p *PostgreSQLCredentialRepository) Update(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials
			  SET envelope = $1, updated_at = $2
			  WHERE id = $3 AND deleted_at IS NULL`

	_, err := querier.ExecContext(ctx, query, credential.Envelope, credential.UpdatedAt, credential.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return nil
}

// SoftDelete marks a credential as deleted by setting the DeletedAt timestamp.
func (p *PostgreSQLCredentialRepository) SoftDelete(ctx context.Context, credentialID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials
			  SET deleted_at = $1, updated_at = $1
			  WHERE id = $2 AND deleted_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), credentialID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	return nil
}

// GetResource retrieves the ownership view of a non-deleted credential for
// authorization checks.
func (p *PostgreSQLCredentialRepository) GetResource(
	ctx context.Context,
	credentialID uuid.UUID,
) (*authzDomain.Resource, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, created_by_id
			  FROM credentials
			  WHERE id = $1 AND deleted_at IS NULL
			  LIMIT 1`

	var resource authzDomain.Resource
	err := querier.QueryRowContext(ctx, query, credentialID).Scan(
		&resource.ID,
		&resource.WorkspaceID,
		&resource.CreatedByID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential resource")
	}

	return &resource, nil
}
