package domain

import (
	apperrors "github.com/allisson/workspaces/internal/errors"
)

var (
	// ErrInvalidRole indicates a role name outside the closed enum.
	ErrInvalidRole = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid role")

	// ErrWorkspaceNotFound indicates the workspace does not exist or is not
	// visible to the caller. Missing and denied are deliberately the same error.
	ErrWorkspaceNotFound = apperrors.Wrap(apperrors.ErrNotFound, "workspace not found")

	// ErrMemberAlreadyExists indicates the user already holds an active
	// membership in the workspace.
	ErrMemberAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "member already exists")

	// ErrMemberNotFound indicates the user has no active membership in the
	// workspace.
	ErrMemberNotFound = apperrors.Wrap(apperrors.ErrNotFound, "member not found")

	// ErrCannotRemoveOwner indicates an attempt to remove the workspace owner
	// from their own workspace.
	ErrCannotRemoveOwner = apperrors.Wrap(apperrors.ErrInvalidInput, "cannot remove workspace owner")

	// ErrSlugAlreadyExists indicates the workspace slug is taken.
	ErrSlugAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "slug already exists")
)
