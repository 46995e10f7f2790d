package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	credentialsDomain "github.com/allisson/workspaces/internal/credentials/domain"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

// Store mocks the Store method of CredentialUseCase.
func (m *MockCredentialUseCase) Store(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field, plaintext string,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, slugOrID, userID, field, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// Resolve mocks the Resolve method of CredentialUseCase.
func (m *MockCredentialUseCase) Resolve(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) (string, error) {
	args := m.Called(ctx, slugOrID, userID, field)
	return args.String(0), args.Error(1)
}

// List mocks the List method of CredentialUseCase.
func (m *MockCredentialUseCase) List(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, slugOrID, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method of CredentialUseCase.
func (m *MockCredentialUseCase) Delete(
	ctx context.Context,
	slugOrID string,
	userID uuid.UUID,
	field string,
) error {
	args := m.Called(ctx, slugOrID, userID, field)
	return args.Error(0)
}
