// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	CreatedByID string    `json:"created_by_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapTaskToResponse converts a domain task to an API response.
func MapTaskToResponse(task *tasksDomain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		WorkspaceID: task.WorkspaceID.String(),
		CreatedByID: task.CreatedByID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ListTasksResponse represents a paginated list of tasks in API responses.
type ListTasksResponse struct {
	Data []TaskResponse `json:"data"`
}

// MapTasksToListResponse converts a slice of domain tasks to a list API response.
func MapTasksToListResponse(tasks []*tasksDomain.Task) ListTasksResponse {
	taskResponses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		taskResponses = append(taskResponses, MapTaskToResponse(task))
	}
	return ListTasksResponse{
		Data: taskResponses,
	}
}
