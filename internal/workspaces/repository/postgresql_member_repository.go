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

// PostgreSQLMemberRepository implements workspace membership persistence for
// PostgreSQL databases.
type PostgreSQLMemberRepository struct {
	db *sql.DB
}

// NewPostgreSQLMemberRepository creates a new PostgreSQL Member repository
// instance.
func NewPostgreSQLMemberRepository(db *sql.DB) *PostgreSQLMemberRepository {
	return &PostgreSQLMemberRepository{db: db}
}

// Create inserts a new membership row into the PostgreSQL database.
func (p *PostgreSQLMemberRepository) Create(
	ctx context.Context,
	member *workspacesDomain.Member,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO workspace_members (id, workspace_id, user_id, role, joined_at, left_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		member.ID,
		member.WorkspaceID,
		member.UserID,
		member.Role.String(),
		member.JoinedAt,
		member.LeftAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create member")
	}
	return nil
}

// GetActiveMember retrieves the user's membership in a workspace, only
// considering rows whose left_at is unset.
func (p *PostgreSQLMemberRepository) GetActiveMember(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*workspacesDomain.Member, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, user_id, role, joined_at, left_at
			  FROM workspace_members
			  WHERE workspace_id = $1 AND user_id = $2 AND left_at IS NULL
			  LIMIT 1`

	return scanMember(querier.QueryRowContext(ctx, query, workspaceID, userID))
}

// List retrieves the active members of a workspace ordered by join time.
func (p *PostgreSQLMemberRepository) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, user_id, role, joined_at, left_at
			  FROM workspace_members
			  WHERE workspace_id = $1 AND left_at IS NULL
			  ORDER BY joined_at ASC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, workspaceID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}
	defer rows.Close()

	var members []*workspacesDomain.Member
	for rows.Next() {
		member, err := scanMemberRow(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate members")
	}

	return members, nil
}

// SetLeftAt marks a member as departed. The row is kept for history; a set
// left_at makes the user a non-member for every read path.
func (p *PostgreSQLMemberRepository) SetLeftAt(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	leftAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE workspace_members
			  SET left_at = $1
			  WHERE workspace_id = $2 AND user_id = $3 AND left_at IS NULL`

	_, err := querier.ExecContext(ctx, query, leftAt, workspaceID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set member left_at")
	}

	return nil
}

// scanMember scans a single membership row, mapping sql.ErrNoRows to
// ErrNotFound.
func scanMember(row *sql.Row) (*workspacesDomain.Member, error) {
	var member workspacesDomain.Member
	var roleName string
	err := row.Scan(
		&member.ID,
		&member.WorkspaceID,
		&member.UserID,
		&roleName,
		&member.JoinedAt,
		&member.LeftAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get member")
	}

	role, err := workspacesDomain.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	member.Role = role

	return &member, nil
}

// scanMemberRow scans a membership row from a multi-row result set.
func scanMemberRow(rows *sql.Rows) (*workspacesDomain.Member, error) {
	var member workspacesDomain.Member
	var roleName string
	err := rows.Scan(
		&member.ID,
		&member.WorkspaceID,
		&member.UserID,
		&roleName,
		&member.JoinedAt,
		&member.LeftAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan member")
	}

	role, err := workspacesDomain.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	member.Role = role

	return &member, nil
}
