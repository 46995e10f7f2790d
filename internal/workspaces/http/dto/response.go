// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// WorkspaceResponse represents a workspace in API responses.
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapWorkspaceToResponse converts a domain workspace to an API response.
func MapWorkspaceToResponse(workspace *workspacesDomain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID.String(),
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		OwnerID:   workspace.OwnerID.String(),
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}
}

// ListWorkspacesResponse represents a paginated list of workspaces in API responses.
type ListWorkspacesResponse struct {
	Data []WorkspaceResponse `json:"data"`
}

// MapWorkspacesToListResponse converts a slice of domain workspaces to a list API response.
func MapWorkspacesToListResponse(workspaces []*workspacesDomain.Workspace) ListWorkspacesResponse {
	workspaceResponses := make([]WorkspaceResponse, 0, len(workspaces))
	for _, workspace := range workspaces {
		workspaceResponses = append(workspaceResponses, MapWorkspaceToResponse(workspace))
	}
	return ListWorkspacesResponse{
		Data: workspaceResponses,
	}
}

// MemberResponse represents a workspace member in API responses.
type MemberResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// MapMemberToResponse converts a domain member to an API response.
func MapMemberToResponse(member *workspacesDomain.Member) MemberResponse {
	return MemberResponse{
		ID:          member.ID.String(),
		WorkspaceID: member.WorkspaceID.String(),
		UserID:      member.UserID.String(),
		Role:        member.Role.String(),
		JoinedAt:    member.JoinedAt,
	}
}

// ListMembersResponse represents a paginated list of workspace members in API responses.
type ListMembersResponse struct {
	Data []MemberResponse `json:"data"`
}

// MapMembersToListResponse converts a slice of domain members to a list API response.
func MapMembersToListResponse(members []*workspacesDomain.Member) ListMembersResponse {
	memberResponses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		memberResponses = append(memberResponses, MapMemberToResponse(member))
	}
	return ListMembersResponse{
		Data: memberResponses,
	}
}
