// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/workspaces/internal/validation"
)

// StoreCredentialRequest represents the request body for storing or rotating
// a credential field.
type StoreCredentialRequest struct {
	Value string `json:"value"`
}

// Validate validates the store credential request fields.
func (r StoreCredentialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Required, customValidation.NotBlank, validation.Length(1, 65536)),
	)
}
