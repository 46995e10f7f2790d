// Package mocks provides mock implementations for testing task use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

// Create mocks the Create method of TaskRepository.
func (m *MockTaskRepository) Create(ctx context.Context, task *tasksDomain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Get mocks the Get method of TaskRepository.
func (m *MockTaskRepository) Get(ctx context.Context, taskID uuid.UUID) (*tasksDomain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasksDomain.Task), args.Error(1)
}

// ListByWorkspace mocks the ListByWorkspace method of TaskRepository.
func (m *MockTaskRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*tasksDomain.Task, error) {
	args := m.Called(ctx, workspaceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasksDomain.Task), args.Error(1)
}

// Update mocks the Update method of TaskRepository.
func (m *MockTaskRepository) Update(ctx context.Context, task *tasksDomain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// SoftDelete mocks the SoftDelete method of TaskRepository.
func (m *MockTaskRepository) SoftDelete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}
