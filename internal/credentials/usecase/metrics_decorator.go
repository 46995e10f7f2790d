package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
	"github.com/allisson/workspaces/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics
// instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", operation, status)
	c.metrics.RecordDuration(ctx, "credentials", operation, time.Since(start), status)
}

// Store records metrics for credential store operations.
func (c *credentialUseCaseWithMetrics) Store(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field, plaintext string,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Store(ctx, slugOrID, userID, field, plaintext)
	c.record(ctx, "credential_store", start, err)
	return credential, err
}

// Resolve records metrics for credential resolve operations.
func (c *credentialUseCaseWithMetrics) Resolve(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Resolve(ctx, slugOrID, userID, field)
	c.record(ctx, "credential_resolve", start, err)
	return plaintext, err
}

// List records metrics for credential list operations.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, slugOrID, userID, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// Delete records metrics for credential deletion operations.
func (c *credentialUseCaseWithMetrics) Delete(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) error {
	start := time.Now()
	err := c.next.Delete(ctx, slugOrID, userID, field)
	c.record(ctx, "credential_delete", start, err)
	return err
}
