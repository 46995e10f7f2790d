// Package mocks provides mock implementations for testing workspace use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository.
type MockWorkspaceRepository struct {
	mock.Mock
}

// Create mocks the Create method of WorkspaceRepository.
func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *workspacesDomain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
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

// ListForUser mocks the ListForUser method of WorkspaceRepository.
func (m *MockWorkspaceRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Workspace, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspacesDomain.Workspace), args.Error(1)
}

// SoftDelete mocks the SoftDelete method of WorkspaceRepository.
func (m *MockWorkspaceRepository) SoftDelete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

// Create mocks the Create method of MemberRepository.
func (m *MockMemberRepository) Create(ctx context.Context, member *workspacesDomain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
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

// List mocks the List method of MemberRepository.
func (m *MockMemberRepository) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	args := m.Called(ctx, workspaceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspacesDomain.Member), args.Error(1)
}

// SetLeftAt mocks the SetLeftAt method of MemberRepository.
func (m *MockMemberRepository) SetLeftAt(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	leftAt time.Time,
) error {
	args := m.Called(ctx, workspaceID, userID, leftAt)
	return args.Error(0)
}
