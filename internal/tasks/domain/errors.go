package domain

import (
	apperrors "github.com/allisson/workspaces/internal/errors"
)

var (
	// ErrTaskNotFound indicates the task does not exist, is soft-deleted, or
	// the acting user may not see it. All three cases share one error so
	// responses never reveal which applies.
	ErrTaskNotFound = apperrors.Wrap(apperrors.ErrNotFound, "task not found")

	// ErrInvalidStatus indicates a status value outside the enum.
	ErrInvalidStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid task status")
)
