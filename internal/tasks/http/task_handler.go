// Package http provides HTTP handlers for task management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/workspaces/internal/errors"
	"github.com/allisson/workspaces/internal/httputil"
	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
	"github.com/allisson/workspaces/internal/tasks/http/dto"
	tasksUseCase "github.com/allisson/workspaces/internal/tasks/usecase"
	customValidation "github.com/allisson/workspaces/internal/validation"
)

// TaskHandler handles HTTP requests for task management operations.
type TaskHandler struct {
	taskUseCase tasksUseCase.TaskUseCase
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler with required dependencies.
func NewTaskHandler(taskUseCase tasksUseCase.TaskUseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new task in a workspace.
// POST /v1/workspaces/:slug/tasks - Requires a writing role in the workspace.
// Returns 201 Created with the task.
func (h *TaskHandler) CreateHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	slugOrID := c.Param("slug")

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	task, err := h.taskUseCase.Create(c.Request.Context(), slugOrID, userID, req.Title, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTaskToResponse(task))
}

// GetHandler retrieves a task by id.
// GET /v1/tasks/:id
// Returns 200 OK. Tasks the user cannot read are reported as not found.
func (h *TaskHandler) GetHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid task id: must be a UUID"),
			h.logger,
		)
		return
	}

	task, err := h.taskUseCase.Get(c.Request.Context(), taskID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTaskToResponse(task))
}

// ListHandler retrieves the tasks of a workspace.
// GET /v1/workspaces/:slug/tasks?offset=0&limit=50
// Returns 200 OK with a paginated task list.
func (h *TaskHandler) ListHandler(c *gin.Context) {
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

	tasks, err := h.taskUseCase.List(c.Request.Context(), slugOrID, userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTasksToListResponse(tasks))
}

// UpdateHandler replaces a task's title, description, and status. The creator
// may always update; workspace admins and the owner may override.
// PUT /v1/tasks/:id
// Returns 200 OK with the updated task.
func (h *TaskHandler) UpdateHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid task id: must be a UUID"),
			h.logger,
		)
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	status, err := tasksDomain.ParseStatus(req.Status)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.Update(
		c.Request.Context(), taskID, userID, req.Title, req.Description, status)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTaskToResponse(task))
}

// DeleteHandler soft deletes a task. Only the task's creator may delete it.
// DELETE /v1/tasks/:id
// Returns 204 No Content.
func (h *TaskHandler) DeleteHandler(c *gin.Context) {
	userID, ok := httputil.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid task id: must be a UUID"),
			h.logger,
		)
		return
	}

	if err := h.taskUseCase.Delete(c.Request.Context(), taskID, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
