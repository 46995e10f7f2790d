// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/workspaces/internal/validation"
)

// CreateWorkspaceRequest contains the parameters for creating a workspace.
// The requesting user becomes the workspace owner.
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// Validate checks if the create workspace request is valid.
func (r *CreateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Slug,
			validation.Required,
			customValidation.Slug,
			validation.Length(1, 100),
		),
	)
}

// AddMemberRequest contains the parameters for adding a member to a workspace.
// The user ID identifies the user to add; the role names one of the workspace
// roles (viewer, stakeholder, developer, pm, admin, owner).
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Validate checks if the add member request is valid.
func (r *AddMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			validation.Length(36, 36),
		),
		validation.Field(&r.Role,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
