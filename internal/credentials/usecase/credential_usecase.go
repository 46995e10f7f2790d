package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	authzUsecase "github.com/allisson/workspaces/internal/authz/usecase"
	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
	cryptoService "github.com/allisson/workspaces/internal/crypto/service"
	"github.com/allisson/workspaces/internal/database"
	apperrors "github.com/allisson/workspaces/internal/errors"
)

// credentialUseCase implements the CredentialUseCase interface.
type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	resolver       authzUsecase.OwnershipResolver
	fieldCipher    cryptoService.FieldCipher
	logger         *slog.Logger
}

// NewCredentialUseCase creates a new credential use case instance with the
// provided dependencies.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	resolver authzUsecase.OwnershipResolver,
	fieldCipher cryptoService.FieldCipher,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		resolver:       resolver,
		fieldCipher:    fieldCipher,
		logger:         logger,
	}
}

// Store encrypts plaintext under the current key version and persists it for
// the workspace field. Requires write capability. Storing an existing field
// rotates it: the old envelope is replaced wholesale and the plaintext is
// re-encrypted with a fresh IV.
func (c *credentialUseCase) Store(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field, plaintext string,
) (*credentialsDomain.Credential, error) {
	access, err := c.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess {
		return nil, credentialsDomain.ErrCredentialNotFound
	}
	if !access.CanWrite {
		return nil, apperrors.ErrForbidden
	}

	envelope, err := c.fieldCipher.EncryptField(field, plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := c.credentialRepo.GetByField(ctx, access.WorkspaceID, field)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Envelope = envelope.String()
		existing.UpdatedAt = now
		err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
			return c.credentialRepo.Update(txCtx, existing)
		})
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	credential := &credentialsDomain.Credential{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: access.WorkspaceID,
		CreatedByID: userID,
		Field:       field,
		Envelope:    envelope.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.credentialRepo.Create(txCtx, credential)
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Resolve decrypts a credential field for a user with read access to its
// workspace. Missing fields, denied access, malformed envelopes, and failed
// tag verification all produce the same not-found error; only an unknown key
// version surfaces, since that is a keyset configuration fault rather than a
// property of the stored data.
func (c *credentialUseCase) Resolve(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) (string, error) {
	access, err := c.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return "", err
	}
	if !access.HasAccess || !access.CanRead {
		return "", credentialsDomain.ErrCredentialNotFound
	}

	credential, err := c.credentialRepo.GetByField(ctx, access.WorkspaceID, field)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return "", credentialsDomain.ErrCredentialNotFound
		}
		return "", err
	}

	envelope, err := cryptoDomain.ParseEnvelope(credential.Envelope)
	if err != nil {
		c.logger.Warn(
			"stored credential envelope is malformed",
			slog.String("workspace_id", credential.WorkspaceID.String()),
			slog.String("field", credential.Field),
			slog.String("error", err.Error()),
		)
		return "", credentialsDomain.ErrCredentialNotFound
	}

	plaintext, err := c.fieldCipher.DecryptField(field, envelope)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrUnknownKeyVersion) {
			return "", err
		}
		c.logger.Warn(
			"stored credential envelope failed to decrypt",
			slog.String("workspace_id", credential.WorkspaceID.String()),
			slog.String("field", credential.Field),
			slog.Uint64("key_version", uint64(envelope.KeyVersion)),
			slog.String("error", err.Error()),
		)
		return "", credentialsDomain.ErrCredentialNotFound
	}

	return plaintext, nil
}

// List retrieves credential metadata for a workspace. Envelopes travel with
// the domain objects but are never decrypted here; the HTTP layer exposes
// metadata only.
func (c *credentialUseCase) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	access, err := c.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess || !access.CanRead {
		return nil, credentialsDomain.ErrCredentialNotFound
	}

	return c.credentialRepo.ListByWorkspace(ctx, access.WorkspaceID, offset, limit)
}

// Delete soft-deletes a credential field. Only the user who stored it may
// delete it; admin override does not apply.
func (c *credentialUseCase) Delete(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) error {
	access, err := c.resolver.ValidateWorkspaceAccess(ctx, slugOrID, userID)
	if err != nil {
		return err
	}
	if !access.HasAccess {
		return credentialsDomain.ErrCredentialNotFound
	}

	credential, err := c.credentialRepo.GetByField(ctx, access.WorkspaceID, field)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return credentialsDomain.ErrCredentialNotFound
		}
		return err
	}

	decision, err := c.resolver.ValidateOwnership(
		ctx,
		authzDomain.ResourceKindCredential,
		credential.ID,
		userID,
		authzDomain.Options{},
	)
	if err != nil {
		return err
	}
	if !decision.HasAccess {
		if decision.Reason == authzDomain.ReasonNotFound {
			return credentialsDomain.ErrCredentialNotFound
		}
		return apperrors.ErrForbidden
	}

	return c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.credentialRepo.SoftDelete(txCtx, credential.ID)
	})
}
