package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
)

// MockOwnershipResolver is a mock implementation of OwnershipResolver.
type MockOwnershipResolver struct {
	mock.Mock
}

// ValidateOwnership mocks the ValidateOwnership method of OwnershipResolver.
func (m *MockOwnershipResolver) ValidateOwnership(
	ctx context.Context,
	kind authzDomain.ResourceKind,
	resourceID uuid.UUID,
	userID uuid.UUID,
	opts authzDomain.Options,
) (authzDomain.AccessDecision, error) {
	args := m.Called(ctx, kind, resourceID, userID, opts)
	return args.Get(0).(authzDomain.AccessDecision), args.Error(1)
}

// ValidateWorkspaceAccess mocks the ValidateWorkspaceAccess method of
// OwnershipResolver.
func (m *MockOwnershipResolver) ValidateWorkspaceAccess(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (authzDomain.WorkspaceAccess, error) {
	args := m.Called(ctx, slugOrID, userID)
	return args.Get(0).(authzDomain.WorkspaceAccess), args.Error(1)
}
