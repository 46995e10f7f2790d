// Package mocks provides mock implementations for testing the ownership
// resolver.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// MockResourceRepository is a mock implementation of ResourceRepository.
type MockResourceRepository struct {
	mock.Mock
}

// GetResource mocks the GetResource method of ResourceRepository.
func (m *MockResourceRepository) GetResource(
	ctx context.Context,
	kind authzDomain.ResourceKind,
	resourceID uuid.UUID,
) (*authzDomain.Resource, error) {
	args := m.Called(ctx, kind, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Resource), args.Error(1)
}

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository.
type MockWorkspaceRepository struct {
	mock.Mock
}

// Get mocks the Get method of WorkspaceRepository.
func (m *MockWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Workspace), args.Error(1)
}

// GetBySlug mocks the GetBySlug method of WorkspaceRepository.
func (m *MockWorkspaceRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*workspacesDomain.Workspace, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Workspace), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

// GetActiveMember mocks the GetActiveMember method of MemberRepository.
func (m *MockMemberRepository) GetActiveMember(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*workspacesDomain.Member, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Member), args.Error(1)
}
