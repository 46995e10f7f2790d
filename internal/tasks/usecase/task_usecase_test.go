package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/workspaces/internal/authz/domain"
	authzMocks "github.com/allisson/workspaces/internal/authz/usecase/mocks"
	databaseMocks "github.com/allisson/workspaces/internal/database/mocks"
	apperrors "github.com/allisson/workspaces/internal/errors"
	tasksDomain "github.com/allisson/workspaces/internal/tasks/domain"
	"github.com/allisson/workspaces/internal/tasks/usecase/mocks"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
)

// taskFixture bundles the task use case with its mocked dependencies.
type taskFixture struct {
	useCase  TaskUseCase
	taskRepo *mocks.MockTaskRepository
	resolver *authzMocks.MockOwnershipResolver
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	taskRepo := &mocks.MockTaskRepository{}
	resolver := &authzMocks.MockOwnershipResolver{}

	useCase := NewTaskUseCase(&databaseMocks.TxManagerPassthrough{}, taskRepo, resolver)

	return &taskFixture{
		useCase:  useCase,
		taskRepo: taskRepo,
		resolver: resolver,
	}
}

// memberAccess builds the workspace access a member with the given role would
// resolve to.
func memberAccess(workspaceID uuid.UUID, role workspacesDomain.Role) authzDomain.WorkspaceAccess {
	return authzDomain.WorkspaceAccess{
		HasAccess:   true,
		CanRead:     role.CanRead(),
		CanWrite:    role.CanWrite(),
		CanAdmin:    role.CanAdmin(),
		Role:        role,
		WorkspaceID: workspaceID,
	}
}

func TestTaskUseCase_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("Success_DeveloperCreates", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, "engineering", userID).
			Return(memberAccess(workspaceID, workspacesDomain.RoleDeveloper), nil).
			Once()
		f.taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Return(nil).
			Once()

		task, err := f.useCase.Create(ctx, "engineering", userID, "Ship release", "cut the tag")
		require.NoError(t, err)
		assert.Equal(t, workspaceID, task.WorkspaceID)
		assert.Equal(t, userID, task.CreatedByID)
		assert.Equal(t, tasksDomain.StatusTodo, task.Status)
		assert.NotEqual(t, uuid.Nil, task.ID)

		f.taskRepo.AssertExpectations(t)
		f.resolver.AssertExpectations(t)
	})

	t.Run("Error_ViewerForbidden", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, "engineering", userID).
			Return(memberAccess(workspaceID, workspacesDomain.RoleViewer), nil).
			Once()

		_, err := f.useCase.Create(ctx, "engineering", userID, "Ship release", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		f.taskRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_NonMemberSeesNotFound", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, "engineering", userID).
			Return(authzDomain.WorkspaceAccess{}, nil).
			Once()

		_, err := f.useCase.Create(ctx, "engineering", userID, "Ship release", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		f.taskRepo.AssertNotCalled(t, "Create")
	})
}

func TestTaskUseCase_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	workspaceID := uuid.Must(uuid.NewV7())
	taskID := uuid.Must(uuid.NewV7())

	task := &tasksDomain.Task{
		ID:          taskID,
		WorkspaceID: workspaceID,
		CreatedByID: uuid.Must(uuid.NewV7()),
		Title:       "Ship release",
		Status:      tasksDomain.StatusInProgress,
	}

	t.Run("Success_ViewerReads", func(t *testing.T) {
		f := newTaskFixture(t)

		f.taskRepo.On("Get", mock.Anything, taskID).Return(task, nil).Once()
		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, workspaceID.String(), userID).
			Return(memberAccess(workspaceID, workspacesDomain.RoleViewer), nil).
			Once()

		got, err := f.useCase.Get(ctx, taskID, userID)
		require.NoError(t, err)
		assert.Equal(t, taskID, got.ID)

		f.taskRepo.AssertExpectations(t)
		f.resolver.AssertExpectations(t)
	})

	t.Run("Error_NonMemberSeesNotFound", func(t *testing.T) {
		f := newTaskFixture(t)

		f.taskRepo.On("Get", mock.Anything, taskID).Return(task, nil).Once()
		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, workspaceID.String(), userID).
			Return(authzDomain.WorkspaceAccess{}, nil).
			Once()

		_, err := f.useCase.Get(ctx, taskID, userID)
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrTaskNotFound)
	})

	t.Run("Error_MissingTask", func(t *testing.T) {
		f := newTaskFixture(t)

		f.taskRepo.On("Get", mock.Anything, taskID).
			Return(nil, apperrors.ErrNotFound).
			Once()

		_, err := f.useCase.Get(ctx, taskID, userID)
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrTaskNotFound)

		f.resolver.AssertNotCalled(t, "ValidateWorkspaceAccess")
	})

	t.Run("Error_LookupFailurePropagates", func(t *testing.T) {
		f := newTaskFixture(t)

		f.taskRepo.On("Get", mock.Anything, taskID).
			Return(nil, errors.New("connection reset")).
			Once()

		_, err := f.useCase.Get(ctx, taskID, userID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTaskUseCase_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("Success_ReturnsTasks", func(t *testing.T) {
		f := newTaskFixture(t)

		tasks := []*tasksDomain.Task{
			{ID: uuid.Must(uuid.NewV7()), WorkspaceID: workspaceID, Title: "A"},
			{ID: uuid.Must(uuid.NewV7()), WorkspaceID: workspaceID, Title: "B"},
		}

		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, "engineering", userID).
			Return(memberAccess(workspaceID, workspacesDomain.RoleStakeholder), nil).
			Once()
		f.taskRepo.On("ListByWorkspace", mock.Anything, workspaceID, 0, 50).
			Return(tasks, nil).
			Once()

		got, err := f.useCase.List(ctx, "engineering", userID, 0, 50)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		f.taskRepo.AssertExpectations(t)
	})

	t.Run("Error_NonMemberSeesNotFound", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On("ValidateWorkspaceAccess", mock.Anything, "engineering", userID).
			Return(authzDomain.WorkspaceAccess{}, nil).
			Once()

		_, err := f.useCase.List(ctx, "engineering", userID, 0, 50)
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrTaskNotFound)

		f.taskRepo.AssertNotCalled(t, "ListByWorkspace")
	})
}

func TestTaskUseCase_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	workspaceID := uuid.Must(uuid.NewV7())
	taskID := uuid.Must(uuid.NewV7())

	storedTask := func() *tasksDomain.Task {
		return &tasksDomain.Task{
			ID:          taskID,
			WorkspaceID: workspaceID,
			CreatedByID: userID,
			Title:       "Ship release",
			Description: "cut the tag",
			Status:      tasksDomain.StatusTodo,
		}
	}

	t.Run("Success_CreatorUpdates", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			userID,
			authzDomain.Options{AllowAdminOverride: true},
		).Return(authzDomain.AccessDecision{
			HasAccess: true,
			IsOwner:   true,
			CanModify: true,
			Reason:    authzDomain.ReasonOwner,
		}, nil).Once()

		f.taskRepo.On("Get", mock.Anything, taskID).Return(storedTask(), nil).Once()
		f.taskRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Return(nil).
			Once()

		task, err := f.useCase.Update(ctx, taskID, userID, "Ship release", "done!", tasksDomain.StatusDone)
		require.NoError(t, err)
		assert.Equal(t, tasksDomain.StatusDone, task.Status)
		assert.Equal(t, "done!", task.Description)

		f.taskRepo.AssertExpectations(t)
		f.resolver.AssertExpectations(t)
	})

	t.Run("Success_AdminOverride", func(t *testing.T) {
		f := newTaskFixture(t)
		adminID := uuid.Must(uuid.NewV7())

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			adminID,
			authzDomain.Options{AllowAdminOverride: true},
		).Return(authzDomain.AccessDecision{
			HasAccess: true,
			CanModify: true,
			Reason:    authzDomain.ReasonAdminOverride,
		}, nil).Once()

		f.taskRepo.On("Get", mock.Anything, taskID).Return(storedTask(), nil).Once()
		f.taskRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Return(nil).
			Once()

		_, err := f.useCase.Update(ctx, taskID, adminID, "Ship release", "", tasksDomain.StatusInProgress)
		require.NoError(t, err)

		f.taskRepo.AssertExpectations(t)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		f := newTaskFixture(t)

		_, err := f.useCase.Update(ctx, taskID, userID, "Ship release", "", tasksDomain.Status("archived"))
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrInvalidStatus)

		f.resolver.AssertNotCalled(t, "ValidateOwnership")
	})

	t.Run("Error_NonOwnerForbidden", func(t *testing.T) {
		f := newTaskFixture(t)
		otherID := uuid.Must(uuid.NewV7())

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			otherID,
			authzDomain.Options{AllowAdminOverride: true},
		).Return(authzDomain.AccessDecision{Reason: authzDomain.ReasonNotOwner}, nil).Once()

		_, err := f.useCase.Update(ctx, taskID, otherID, "x", "", tasksDomain.StatusDone)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		f.taskRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Error_MissingTaskNotFound", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			userID,
			authzDomain.Options{AllowAdminOverride: true},
		).Return(authzDomain.AccessDecision{Reason: authzDomain.ReasonNotFound}, nil).Once()

		_, err := f.useCase.Update(ctx, taskID, userID, "x", "", tasksDomain.StatusDone)
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrTaskNotFound)
	})
}

func TestTaskUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	taskID := uuid.Must(uuid.NewV7())

	t.Run("Success_CreatorDeletes", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			userID,
			authzDomain.Options{},
		).Return(authzDomain.AccessDecision{
			HasAccess: true,
			IsOwner:   true,
			CanModify: true,
			Reason:    authzDomain.ReasonOwner,
		}, nil).Once()

		f.taskRepo.On("SoftDelete", mock.Anything, taskID).Return(nil).Once()

		err := f.useCase.Delete(ctx, taskID, userID)
		require.NoError(t, err)

		f.taskRepo.AssertExpectations(t)
	})

	t.Run("Error_AdminCannotDeleteOthersTask", func(t *testing.T) {
		f := newTaskFixture(t)
		adminID := uuid.Must(uuid.NewV7())

		// Delete never requests admin override; an admin who is not the
		// creator is denied.
		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			adminID,
			authzDomain.Options{},
		).Return(authzDomain.AccessDecision{Reason: authzDomain.ReasonNotOwner}, nil).Once()

		err := f.useCase.Delete(ctx, taskID, adminID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		f.taskRepo.AssertNotCalled(t, "SoftDelete")
	})

	t.Run("Error_MissingTaskNotFound", func(t *testing.T) {
		f := newTaskFixture(t)

		f.resolver.On(
			"ValidateOwnership",
			mock.Anything,
			authzDomain.ResourceKindTask,
			taskID,
			userID,
			authzDomain.Options{},
		).Return(authzDomain.AccessDecision{Reason: authzDomain.ReasonNotFound}, nil).Once()

		err := f.useCase.Delete(ctx, taskID, userID)
		require.Error(t, err)
		assert.ErrorIs(t, err, tasksDomain.ErrTaskNotFound)
	})
}
