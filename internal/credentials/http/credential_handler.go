// Package http provides HTTP handlers for workspace credential management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/allisson/workspaces/internal/credentials/http/dto"
	credentialsUseCase "github.com/allisson/workspaces/internal/credentials/usecase"
	apperrors "github.com/allisson/workspaces/internal/errors"
	"github.com/allisson/workspaces/internal/httputil"
	customValidation "github.com/allisson/workspaces/internal/validation"
)

// CredentialHandler handles HTTP requests for credential management operations.
type CredentialHandler struct {
	credentialUseCase credentialsUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialUseCase credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// fieldParam extracts and validates the credential field name route parameter.
func fieldParam(c *gin.Context) (string, error) {
	field := c.Param("field")
	err := validation.Validate(field, validation.Required, customValidation.FieldName, validation.Length(1, 100))
	if err != nil {
		return "", customValidation.WrapValidationError(err)
	}
	return field, nil
}

// StoreHandler stores or rotates a credential field. The plaintext value is
// encrypted before it reaches storage; storing an existing field replaces its
// envelope.
// PUT /v1/workspaces/:slug/credentials/:field - Requires a writing role.
// Returns 200 OK with credential metadata, never the value.
func (h *CredentialHandler) StoreHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	field, err := fieldParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.credentialUseCase.Store(c.Request.Context(), slugOrID, userID, field, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// ResolveHandler decrypts and returns a credential value.
// GET /v1/workspaces/:slug/credentials/:field
// Returns 200 OK. Missing fields, denied access, and undecryptable envelopes
// are all reported as not found.
func (h *CredentialHandler) ResolveHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	field, err := fieldParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	value, err := h.credentialUseCase.Resolve(c.Request.Context(), slugOrID, userID, field)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ResolveCredentialResponse{Field: field, Value: value})
}

// ListHandler retrieves the credential metadata of a workspace. Values and
// envelopes are never listed.
// GET /v1/workspaces/:slug/credentials?offset=0&limit=50
// Returns 200 OK with a paginated metadata list.
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	credentials, err := h.credentialUseCase.List(c.Request.Context(), slugOrID, userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(credentials))
}

// DeleteHandler soft deletes a credential field. Only the user who stored it
// may delete it.
// DELETE /v1/workspaces/:slug/credentials/:field
// Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	field, err := fieldParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), slugOrID, userID, field); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
