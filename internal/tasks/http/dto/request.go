// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/workspaces/internal/validation"
)

// CreateTaskRequest contains the parameters for creating a task.
// New tasks always start in the todo status.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Validate checks if the create task request is valid.
func (r *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 500),
		),
		validation.Field(&r.Description,
			validation.Length(0, 10000),
		),
	)
}

// UpdateTaskRequest contains the full replacement state for a task.
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required"`
}

// Validate checks if the update task request is valid.
func (r *UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 500),
		),
		validation.Field(&r.Description,
			validation.Length(0, 10000),
		),
		validation.Field(&r.Status,
			validation.Required,
		),
	)
}
