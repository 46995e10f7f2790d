package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	"github.com/allisson/workspaces/internal/metrics"
)

// ownershipResolverWithMetrics decorates OwnershipResolver with metrics
// instrumentation.
type ownershipResolverWithMetrics struct {
	next    OwnershipResolver
	metrics metrics.BusinessMetrics
}

// NewOwnershipResolverWithMetrics wraps an OwnershipResolver with metrics
// recording.
func NewOwnershipResolverWithMetrics(resolver OwnershipResolver, m metrics.BusinessMetrics) OwnershipResolver {
	return &ownershipResolverWithMetrics{
		next:    resolver,
		metrics: m,
	}
}

// ValidateOwnership records metrics for single-resource ownership checks.
// Denied decisions count as success; only lookup failures count as error.
func (o *ownershipResolverWithMetrics) ValidateOwnership(
	ctx context.Context,
	kind authzDomain.ResourceKind,
	resourceID uuid.UUID,
	userID uuid.UUID,
	opts authzDomain.Options,
) (authzDomain.AccessDecision, error) {
	start := time.Now()
	decision, err := o.next.ValidateOwnership(ctx, kind, resourceID, userID, opts)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "authz", "validate_ownership", status)
	o.metrics.RecordDuration(ctx, "authz", "validate_ownership", time.Since(start), status)

	return decision, err
}

// ValidateWorkspaceAccess records metrics for workspace access checks.
func (o *ownershipResolverWithMetrics) ValidateWorkspaceAccess(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (authzDomain.WorkspaceAccess, error) {
	start := time.Now()
	access, err := o.next.ValidateWorkspaceAccess(ctx, slugOrID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "authz", "validate_workspace_access", status)
	o.metrics.RecordDuration(ctx, "authz", "validate_workspace_access", time.Since(start), status)

	return access, err
}
