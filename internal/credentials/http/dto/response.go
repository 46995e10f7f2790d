package dto

import (
	"time"

	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
)

// CredentialResponse represents credential metadata in API responses. The
// envelope and the plaintext are never included; only Resolve returns a value.
type CredentialResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	CreatedByID string    `json:"created_by_id"`
	Field       string    `json:"field"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapCredentialToResponse converts a domain credential to an API response.
func MapCredentialToResponse(credential *credentialsDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:          credential.ID.String(),
		WorkspaceID: credential.WorkspaceID.String(),
		CreatedByID: credential.CreatedByID.String(),
		Field:       credential.Field,
		CreatedAt:   credential.CreatedAt,
		UpdatedAt:   credential.UpdatedAt,
	}
}

// ResolveCredentialResponse carries a decrypted credential value.
type ResolveCredentialResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ListCredentialsResponse represents a paginated list of credential metadata
// in API responses.
type ListCredentialsResponse struct {
	Data []CredentialResponse `json:"data"`
}

// MapCredentialsToListResponse converts a slice of domain credentials to a
// list API response.
func MapCredentialsToListResponse(credentials []*credentialsDomain.Credential) ListCredentialsResponse {
	credentialResponses := make([]CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		credentialResponses = append(credentialResponses, MapCredentialToResponse(credential))
	}
	return ListCredentialsResponse{
		Data: credentialResponses,
	}
}
