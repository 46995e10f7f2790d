// Package http provides HTTP handlers for workspace and membership management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/workspaces/internal/errors"
	"github.com/allisson/workspaces/internal/httputil"
	customValidation "github.com/allisson/workspaces/internal/validation"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
	"github.com/allisson/workspaces/internal/workspaces/http/dto"
	workspacesUseCase "github.com/allisson/workspaces/internal/workspaces/usecase"
)

// WorkspaceHandler handles HTTP requests for workspace management operations.
type WorkspaceHandler struct {
	workspaceUseCase workspacesUseCase.WorkspaceUseCase
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler with required dependencies.
func NewWorkspaceHandler(
	workspaceUseCase workspacesUseCase.WorkspaceUseCase,
	logger *slog.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUseCase: workspaceUseCase,
		logger:           logger,
	}
}

// CreateHandler creates a new workspace owned by the requesting user.
// POST /v1/workspaces
// Returns 201 Created with the workspace.
func (h *WorkspaceHandler) CreateHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	workspace, err := h.workspaceUseCase.Create(c.Request.Context(), userID, req.Name, req.Slug)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapWorkspaceToResponse(workspace))
}

// GetHandler retrieves a workspace by slug or ID.
// GET /v1/workspaces/:slug
// Returns 200 OK. Workspaces the user cannot read are reported as not found.
func (h *WorkspaceHandler) GetHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	workspace, err := h.workspaceUseCase.Get(c.Request.Context(), slugOrID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapWorkspaceToResponse(workspace))
}

// ListHandler retrieves the workspaces the requesting user owns or belongs to.
// GET /v1/workspaces?offset=0&limit=50
// Returns 200 OK with a paginated workspace list.
func (h *WorkspaceHandler) ListHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	workspaces, err := h.workspaceUseCase.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapWorkspacesToListResponse(workspaces))
}

// DeleteHandler soft deletes a workspace. Only the workspace owner may delete it.
// DELETE /v1/workspaces/:slug
// Returns 204 No Content.
func (h *WorkspaceHandler) DeleteHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	if err := h.workspaceUseCase.Delete(c.Request.Context(), slugOrID, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AddMemberHandler adds a user to a workspace with a role.
// POST /v1/workspaces/:slug/members - Requires an admin role in the workspace.
// Returns 201 Created with the membership.
func (h *WorkspaceHandler) AddMemberHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	memberUserID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid user_id: must be a UUID"),
			h.logger,
		)
		return
	}

	role, err := workspacesDomain.ParseRole(req.Role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	member, err := h.workspaceUseCase.AddMember(c.Request.Context(), slugOrID, userID, memberUserID, role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMemberToResponse(member))
}

// RemoveMemberHandler removes a member from a workspace. The membership row is
// kept with its departure time so history survives.
// DELETE /v1/workspaces/:slug/members/:userID - Requires an admin role.
// Returns 204 No Content.
func (h *WorkspaceHandler) RemoveMemberHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	memberUserID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid user id: must be a UUID"),
			h.logger,
		)
		return
	}

	if err := h.workspaceUseCase.RemoveMember(c.Request.Context(), slugOrID, userID, memberUserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListMembersHandler retrieves the active members of a workspace.
// GET /v1/workspaces/:slug/members?offset=0&limit=50
// Returns 200 OK with a paginated member list.
func (h *WorkspaceHandler) ListMembersHandler(c *gin.Context) {
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

	members, err := h.workspaceUseCase.ListMembers(c.Request.Context(), slugOrID, userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMembersToListResponse(members))
}
