// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/workspaces/internal/errors"
)

var (
	// slugRegex matches URL-safe identifiers: lowercase alphanumerics separated
	// by single hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// fieldNameRegex matches credential field names: an identifier starting
	// with a letter, e.g. "swarmApiKey" or "oauth_token".
	fieldNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that a string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Slug validates a URL-safe workspace identifier.
var Slug = validation.NewStringRuleWithError(
	func(s string) bool {
		return slugRegex.MatchString(s)
	},
	validation.NewError("validation_slug", "must be lowercase alphanumerics separated by hyphens"),
)

// FieldName validates a credential field name.
var FieldName = validation.NewStringRuleWithError(
	func(s string) bool {
		return fieldNameRegex.MatchString(s)
	},
	validation.NewError("validation_field_name", "must be an identifier starting with a letter"),
)
