package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	apperrors "github.com/allisson/workspaces/internal/errors"
)

// mockResourceLookup is a mock implementation of ResourceLookup.
type mockResourceLookup struct {
	mock.Mock
}

func (m *mockResourceLookup) GetResource(
	ctx context.Context,
	resourceID uuid.UUID,
) (*authzDomain.Resource, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Resource), args.Error(1)
}

func TestCompositeResourceRepository_GetResource(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.Must(uuid.NewV7())

	resource := &authzDomain.Resource{
		ID:          resourceID,
		WorkspaceID: uuid.Must(uuid.NewV7()),
		CreatedByID: uuid.Must(uuid.NewV7()),
	}

	t.Run("Success_DispatchesByKind", func(t *testing.T) {
		taskLookup := &mockResourceLookup{}
		credentialLookup := &mockResourceLookup{}
		repo := NewCompositeResourceRepository(taskLookup, credentialLookup)

		taskLookup.On("GetResource", mock.Anything, resourceID).Return(resource, nil).Once()

		got, err := repo.GetResource(ctx, authzDomain.ResourceKindTask, resourceID)
		require.NoError(t, err)
		assert.Equal(t, resource, got)

		credentialLookup.AssertNotCalled(t, "GetResource")

		credentialLookup.On("GetResource", mock.Anything, resourceID).Return(resource, nil).Once()

		_, err = repo.GetResource(ctx, authzDomain.ResourceKindCredential, resourceID)
		require.NoError(t, err)

		taskLookup.AssertExpectations(t)
		credentialLookup.AssertExpectations(t)
	})

	t.Run("Error_UnknownKind", func(t *testing.T) {
		repo := NewCompositeResourceRepository(&mockResourceLookup{}, &mockResourceLookup{})

		_, err := repo.GetResource(ctx, authzDomain.ResourceKind("document"), resourceID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_NotFoundPropagates", func(t *testing.T) {
		taskLookup := &mockResourceLookup{}
		repo := NewCompositeResourceRepository(taskLookup, &mockResourceLookup{})

		taskLookup.On("GetResource", mock.Anything, resourceID).
			Return(nil, apperrors.ErrNotFound).
			Once()

		_, err := repo.GetResource(ctx, authzDomain.ResourceKindTask, resourceID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
