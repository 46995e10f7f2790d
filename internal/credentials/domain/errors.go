package domain

import (
	apperrors "github.com/allisson/workspaces/internal/errors"
)

var (
	// ErrCredentialNotFound indicates the credential does not exist, is
	// soft-deleted, is unreadable, or the acting user may not see it. All
	// cases deliberately share one error: responses must never reveal whether
	// a credential exists or whether its stored envelope is intact.
	ErrCredentialNotFound = apperrors.Wrap(apperrors.ErrNotFound, "credential not found")

	// ErrInvalidField indicates a credential field name outside the allowed
	// identifier shape.
	ErrInvalidField = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid credential field")
)
