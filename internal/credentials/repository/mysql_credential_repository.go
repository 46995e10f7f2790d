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

// MySQLCredentialRepository implements Credential persistence for MySQL
// databases. UUIDs are stored as binary(16).
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQL Credential repository instance.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

// Create inserts a new credential into the MySQL database.
func (m *MySQLCredentialRepository) Create(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO credentials (id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	workspaceID, err := credential.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	createdByID, err := credential.CreatedByID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal created by id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		workspaceID,
		createdByID,
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
func (m *MySQLCredentialRepository) GetByField(
	ctx context.Context,
	workspaceID uuid.UUID,
	field string,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at
			  FROM credentials
			  WHERE workspace_id = ? AND field = ? AND deleted_at IS NULL
			  LIMIT 1`

	id, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	var credential credentialsDomain.Credential
	var credentialIDRaw, workspaceIDRaw, createdByIDRaw []byte
	err = querier.QueryRowContext(ctx, query, id, field).Scan(
		&credentialIDRaw,
		&workspaceIDRaw,
		&createdByIDRaw,
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

	if err := fillMySQLCredential(&credential, credentialIDRaw, workspaceIDRaw, createdByIDRaw); err != nil {
		return nil, err
	}

	return &credential, nil
}

// ListByWorkspace retrieves the non-deleted credentials of a workspace,
// ordered by field name.
func (m *MySQLCredentialRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id, field, envelope, created_at, updated_at, deleted_at
			  FROM credentials
			  WHERE workspace_id = ? AND deleted_at IS NULL
			  ORDER BY field ASC
			  LIMIT ? OFFSET ?`

	id, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	rows, err := querier.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer rows.Close()

	var credentials []*credentialsDomain.Credential
	for rows.Next() {
		var credential credentialsDomain.Credential
		var credentialIDRaw, workspaceIDRaw, createdByIDRaw []byte
		err := rows.Scan(
			&credentialIDRaw,
			&workspaceIDRaw,
			&createdByIDRaw,
			&credential.Field,
			&credential.Envelope,
			&credential.CreatedAt,
			&credential.UpdatedAt,
			&credential.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}

		if err := fillMySQLCredential(&credential, credentialIDRaw, workspaceIDRaw, createdByIDRaw); err != nil {
			return nil, err
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
func (m *MySQLCredentialRepository) Update(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE credentials
			  SET envelope = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	_, err = querier.ExecContext(ctx, query, credential.Envelope, credential.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}

	return nil
}

// SoftDelete marks a credential as deleted by setting the DeletedAt timestamp.
func (m *MySQLCredentialRepository) SoftDelete(ctx context.Context, credentialID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE credentials
			  SET deleted_at = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	now := time.Now().UTC()
	_, err = querier.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	return nil
}

// GetResource retrieves the ownership view of a non-deleted credential for
// authorization checks.
func (m *MySQLCredentialRepository) GetResource(
	ctx context.Context,
	credentialID uuid.UUID,
) (*authzDomain.Resource, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, created_by_id
			  FROM credentials
			  WHERE id = ? AND deleted_at IS NULL
			  LIMIT 1`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential id")
	}

	var credentialIDRaw, workspaceIDRaw, createdByIDRaw []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(&credentialIDRaw, &workspaceIDRaw, &createdByIDRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential resource")
	}

	var resource authzDomain.Resource
	if err := resource.ID.UnmarshalBinary(credentialIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	if err := resource.WorkspaceID.UnmarshalBinary(workspaceIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := resource.CreatedByID.UnmarshalBinary(createdByIDRaw); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created by id")
	}

	return &resource, nil
}

// fillMySQLCredential decodes the binary UUID columns into the credential.
func fillMySQLCredential(credential *credentialsDomain.Credential, id, workspaceID, createdByID []byte) error {
	if err := credential.ID.UnmarshalBinary(id); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	if err := credential.WorkspaceID.UnmarshalBinary(workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := credential.CreatedByID.UnmarshalBinary(createdByID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal created by id")
	}

	return nil
}
