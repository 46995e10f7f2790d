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

// MySQLMemberRepository implements workspace membership persistence for MySQL
// databases. UUIDs are stored as binary(16).
type MySQLMemberRepository struct {
	db *sql.DB
}

// NewMySQLMemberRepository creates a new MySQL Member repository instance.
func NewMySQLMemberRepository(db *sql.DB) *MySQLMemberRepository {
	return &MySQLMemberRepository{db: db}
}

// Create inserts a new membership row into the MySQL database.
func (m *MySQLMemberRepository) Create(
	ctx context.Context,
	member *workspacesDomain.Member,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO workspace_members (id, workspace_id, user_id, role, joined_at, left_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := member.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal member id")
	}

	workspaceID, err := member.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	userID, err := member.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		workspaceID,
		userID,
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
func (m *MySQLMemberRepository) GetActiveMember(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*workspacesDomain.Member, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, user_id, role, joined_at, left_at
			  FROM workspace_members
			  WHERE workspace_id = ? AND user_id = ? AND left_at IS NULL
			  LIMIT 1`

	wsID, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	uID, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	var member workspacesDomain.Member
	var memberID, rowWorkspaceID, rowUserID []byte
	var roleName string

	err = querier.QueryRowContext(ctx, query, wsID, uID).Scan(
		&memberID,
		&rowWorkspaceID,
		&rowUserID,
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

	if err := fillMySQLMember(&member, memberID, rowWorkspaceID, rowUserID, roleName); err != nil {
		return nil, err
	}

	return &member, nil
}

// List retrieves the active members of a workspace ordered by join time.
func (m *MySQLMemberRepository) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, workspace_id, user_id, role, joined_at, left_at
			  FROM workspace_members
			  WHERE workspace_id = ? AND left_at IS NULL
			  ORDER BY joined_at ASC
			  LIMIT ? OFFSET ?`

	wsID, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	rows, err := querier.QueryContext(ctx, query, wsID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}
	defer rows.Close()

	var members []*workspacesDomain.Member
	for rows.Next() {
		var member workspacesDomain.Member
		var memberID, rowWorkspaceID, rowUserID []byte
		var roleName string

		err := rows.Scan(
			&memberID,
			&rowWorkspaceID,
			&rowUserID,
			&roleName,
			&member.JoinedAt,
			&member.LeftAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan member")
		}

		if err := fillMySQLMember(&member, memberID, rowWorkspaceID, rowUserID, roleName); err != nil {
			return nil, err
		}

		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate members")
	}

	return members, nil
}

// SetLeftAt marks a member as departed. The row is kept for history; a set
// left_at makes the user a non-member for every read path.
func (m *MySQLMemberRepository) SetLeftAt(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	leftAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE workspace_members
			  SET left_at = ?
			  WHERE workspace_id = ? AND user_id = ? AND left_at IS NULL`

	wsID, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	uID, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(ctx, query, leftAt, wsID, uID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set member left_at")
	}

	return nil
}

// fillMySQLMember unmarshals binary UUID columns and the role name into a
// member.
func fillMySQLMember(
	member *workspacesDomain.Member,
	memberID, workspaceID, userID []byte,
	roleName string,
) error {
	if err := member.ID.UnmarshalBinary(memberID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal member id")
	}
	if err := member.WorkspaceID.UnmarshalBinary(workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal workspace id")
	}
	if err := member.UserID.UnmarshalBinary(userID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal user id")
	}

	role, err := workspacesDomain.ParseRole(roleName)
	if err != nil {
		return err
	}
	member.Role = role

	return nil
}
