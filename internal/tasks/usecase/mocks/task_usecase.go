package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// MockTaskUseCase is a mock implementation of TaskUseCase.
type MockTaskUseCase struct {
	mock.Mock
}

// Create mocks the Create method of TaskUseCase.
func (m *MockTaskUseCase) Create(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	title, description string,
) (*tasksDomain.Task, error) {
	args := m.Called(ctx, slugOrID, userID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasksDomain.Task), args.Error(1)
}

// Get mocks the Get method of TaskUseCase.
func (m *MockTaskUseCase) Get(ctx context.Context, taskID, userID uuid.UUID) (*tasksDomain.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasksDomain.Task), args.Error(1)
}

// List mocks the List method of TaskUseCase.
func (m *MockTaskUseCase) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	args := m.Called(ctx, slugOrID, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasksDomain.Task), args.Error(1)
}

// Update mocks the Update method of TaskUseCase.
func (m *MockTaskUseCase) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	title, description string,
	status tasksDomain.Status,
) (*tasksDomain.Task, error) {
	args := m.Called(ctx, taskID, userID, title, description, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasksDomain.Task), args.Error(1)
}

// Delete mocks the Delete method of TaskUseCase.
func (m *MockTaskUseCase) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}
