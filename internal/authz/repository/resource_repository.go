// Package repository implements the resource lookup used by ownership checks,
// dispatching by resource kind to the owning module's persistence layer.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	apperrors "github.com/allisson/workspaces/internal/errors"
)

// ResourceLookup retrieves the ownership view of a single resource kind.
// Task and credential repositories implement it; lookups exclude soft-deleted
// rows.
type ResourceLookup interface {
	GetResource(ctx context.Context, resourceID uuid.UUID) (*authzDomain.Resource, error)
}

// CompositeResourceRepository dispatches resource lookups by kind to the
// owning module's repository.
type CompositeResourceRepository struct {
	lookups map[authzDomain.ResourceKind]ResourceLookup
}

// NewCompositeResourceRepository creates a resource repository backed by the
// task and credential lookups.
func NewCompositeResourceRepository(
	taskLookup ResourceLookup,
	credentialLookup ResourceLookup,
) *CompositeResourceRepository {
	return &CompositeResourceRepository{
		lookups: map[authzDomain.ResourceKind]ResourceLookup{
			authzDomain.ResourceKindTask:       taskLookup,
			authzDomain.ResourceKindCredential: credentialLookup,
		},
	}
}

// GetResource retrieves the ownership view of a resource by kind and id.
func (c *CompositeResourceRepository) GetResource(
	ctx context.Context,
	kind authzDomain.ResourceKind,
	resourceID uuid.UUID,
) (*authzDomain.Resource, error) {
	lookup, ok := c.lookups[kind]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("unknown resource kind %q", kind))
	}

	return lookup.GetResource(ctx, resourceID)
}
