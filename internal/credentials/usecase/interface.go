// Package usecase implements business logic for workspace credential
// management: storing, rotating, resolving, and deleting encrypted fields.
package usecase

import (
	"context"

	"github.com/google/uuid"

	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
)

// CredentialRepository defines the interface for Credential persistence
// operations. All read operations exclude soft-deleted credentials.
type CredentialRepository interface {
	Create(ctx context.Context, credential *credentialsDomain.Credential) error
	GetByField(ctx context.Context, workspaceID uuid.UUID, field string) (*credentialsDomain.Credential, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, offset, limit int) ([]*credentialsDomain.Credential, error)
	Update(ctx context.Context, credential *credentialsDomain.Credential) error
	SoftDelete(ctx context.Context, credentialID uuid.UUID) error
}

// CredentialUseCase defines the interface for credential management business
// logic. Store requires a writing role and rotates in place when the field
// already exists; Resolve decrypts for any workspace member; Delete enforces
// strict creator ownership. Plaintext never leaves Resolve.
type CredentialUseCase interface {
	Store(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
		field, plaintext string,
	) (*credentialsDomain.Credential, error)
	Resolve(ctx context.Context, slugOrID string, userID uuid.UUID, field string) (string, error)
	List(
		ctx context.Context,
		slugOrID string,
		userID uuid.UUID,
		offset, limit int,
	) ([]*credentialsDomain.Credential, error)
	Delete(ctx context.Context, slugOrID string, userID uuid.UUID, field string) error
}
