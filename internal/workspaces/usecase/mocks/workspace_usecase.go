package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// MockWorkspaceUseCase is a mock implementation of WorkspaceUseCase.
type MockWorkspaceUseCase struct {
	mock.Mock
}

// Create mocks the Create method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, slug string,
) (*workspacesDomain.Workspace, error) {
	args := m.Called(ctx, userID, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Workspace), args.Error(1)
}

// Get mocks the Get method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Get(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
) (*workspacesDomain.Workspace, error) {
	args := m.Called(ctx, slugOrID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Workspace), args.Error(1)
}

// List mocks the List method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) List(
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

// Delete mocks the Delete method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Delete(ctx context.Context, slugOrID string, userID uuid.UUID) error {
	args := m.Called(ctx, slugOrID, userID)
	return args.Error(0)
}

// AddMember mocks the AddMember method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) AddMember(
	ctx context.Context,
	slugOrID string,
	actingUserID uuid.UUID,
	memberUserID uuid.UUID,
	role workspacesDomain.Role,
) (*workspacesDomain.Member, error) {
	args := m.Called(ctx, slugOrID, actingUserID, memberUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspacesDomain.Member), args.Error(1)
}

// RemoveMember mocks the RemoveMember method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) RemoveMember(
	ctx context.Context,
	slugOrID string,
	actingUserID, memberUserID uuid.UUID,
) error {
	args := m.Called(ctx, slugOrID, actingUserID, memberUserID)
	return args.Error(0)
}

// ListMembers mocks the ListMembers method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) ListMembers(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*workspacesDomain.Member, error) {
	args := m.Called(ctx, slugOrID, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspacesDomain.Member), args.Error(1)
}
