// Package mocks provides mock implementations for credential management interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method of CredentialRepository.
func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetByField mocks the GetByField method of CredentialRepository.
func (m *MockCredentialRepository) GetByField(
	ctx context.Context,
	workspaceID uuid.UUID,
	field string,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, workspaceID, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// ListByWorkspace mocks the ListByWorkspace method of CredentialRepository.
func (m *MockCredentialRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, workspaceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Update mocks the Update method of CredentialRepository.
func (m *MockCredentialRepository) Update(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// SoftDelete mocks the SoftDelete method of CredentialRepository.
func (m *MockCredentialRepository) SoftDelete(ctx context.Context, credentialID uuid.UUID) error {
	args := m.Called(ctx, credentialID)
	return args.Error(0)
}
