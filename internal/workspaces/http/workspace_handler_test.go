package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/workspaces/internal/errors"
	"github.com/allisson/workspaces/internal/httputil"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
	"github.com/allisson/workspaces/internal/workspaces/http/dto"
	"github.com/allisson/workspaces/internal/workspaces/usecase/mocks"
)

// setupTestHandler creates a test handler with a mocked use case.
func setupTestHandler(t *testing.T) (*WorkspaceHandler, *mocks.MockWorkspaceUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockWorkspaceUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewWorkspaceHandler(mockUseCase, logger)

	return handler, mockUseCase
}

// createTestContext builds a gin test context with an optional JSON body and
// the acting user stored in the request context.
func createTestContext(
	method, path string,
	body interface{},
	userID uuid.UUID,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if userID != uuid.Nil {
		req = req.WithContext(httputil.WithUserID(req.Context(), userID))
	}

	c.Request = req

	return c, w
}

func TestWorkspaceHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		workspaceID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		request := dto.CreateWorkspaceRequest{
			Name: "Engineering",
			Slug: "engineering",
		}

		expectedWorkspace := &workspacesDomain.Workspace{
			ID:        workspaceID,
			Name:      "Engineering",
			Slug:      "engineering",
			OwnerID:   userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		mockUseCase.On("Create", mock.Anything, userID, "Engineering", "engineering").
			Return(expectedWorkspace, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/workspaces", request, userID)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.WorkspaceResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, workspaceID.String(), response.ID)
		assert.Equal(t, "engineering", response.Slug)
		assert.Equal(t, userID.String(), response.OwnerID)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingIdentity", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.CreateWorkspaceRequest{Name: "Engineering", Slug: "engineering"}
		c, w := createTestContext(http.MethodPost, "/v1/workspaces", request, uuid.Nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_InvalidSlug", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		request := dto.CreateWorkspaceRequest{Name: "Engineering", Slug: "Not A Slug"}
		c, w := createTestContext(http.MethodPost, "/v1/workspaces", request, userID)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_SlugAlreadyTaken", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		request := dto.CreateWorkspaceRequest{Name: "Engineering", Slug: "engineering"}

		mockUseCase.On("Create", mock.Anything, userID, "Engineering", "engineering").
			Return(nil, workspacesDomain.ErrSlugAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/workspaces", request, userID)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestWorkspaceHandler_GetHandler(t *testing.T) {
	t.Run("Success_BySlug", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		workspaceID := uuid.Must(uuid.NewV7())

		expectedWorkspace := &workspacesDomain.Workspace{
			ID:      workspaceID,
			Name:    "Engineering",
			Slug:    "engineering",
			OwnerID: userID,
		}

		mockUseCase.On("Get", mock.Anything, "engineering", userID).
			Return(expectedWorkspace, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/workspaces/engineering", nil, userID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.WorkspaceResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, workspaceID.String(), response.ID)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_DeniedReportedAsNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, "engineering", userID).
			Return(nil, workspacesDomain.ErrWorkspaceNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/workspaces/engineering", nil, userID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestWorkspaceHandler_ListHandler(t *testing.T) {
	t.Run("Success_ReturnsWorkspaces", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		workspaces := []*workspacesDomain.Workspace{
			{ID: uuid.Must(uuid.NewV7()), Name: "Engineering", Slug: "engineering", OwnerID: userID},
			{ID: uuid.Must(uuid.NewV7()), Name: "Design", Slug: "design", OwnerID: userID},
		}

		mockUseCase.On("List", mock.Anything, userID, 0, 50).
			Return(workspaces, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/workspaces", nil, userID)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListWorkspacesResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodGet, "/v1/workspaces?limit=1000", nil, userID)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})
}

func TestWorkspaceHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_OwnerDeletes", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, "engineering", userID).
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/workspaces/engineering", nil, userID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NonOwnerForbidden", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, "engineering", userID).
			Return(apperrors.ErrForbidden).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/workspaces/engineering", nil, userID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestWorkspaceHandler_AddMemberHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		memberUserID := uuid.Must(uuid.NewV7())
		workspaceID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		request := dto.AddMemberRequest{
			UserID: memberUserID.String(),
			Role:   "developer",
		}

		expectedMember := &workspacesDomain.Member{
			ID:          uuid.Must(uuid.NewV7()),
			WorkspaceID: workspaceID,
			UserID:      memberUserID,
			Role:        workspacesDomain.RoleDeveloper,
			JoinedAt:    now,
		}

		mockUseCase.On(
			"AddMember",
			mock.Anything,
			"engineering",
			actingUserID,
			memberUserID,
			workspacesDomain.RoleDeveloper,
		).Return(expectedMember, nil).Once()

		c, w := createTestContext(
			http.MethodPost, "/v1/workspaces/engineering/members", request, actingUserID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.AddMemberHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.MemberResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, memberUserID.String(), response.UserID)
		assert.Equal(t, "developer", response.Role)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		request := dto.AddMemberRequest{
			UserID: uuid.Must(uuid.NewV7()).String(),
			Role:   "superuser",
		}

		c, w := createTestContext(
			http.MethodPost, "/v1/workspaces/engineering/members", request, actingUserID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.AddMemberHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "AddMember")
	})

	t.Run("Error_MalformedUserID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		request := dto.AddMemberRequest{
			UserID: "not-a-uuid-but-36-characters-long!!!",
			Role:   "developer",
		}

		c, w := createTestContext(
			http.MethodPost, "/v1/workspaces/engineering/members", request, actingUserID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.AddMemberHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "AddMember")
	})

	t.Run("Error_AlreadyMember", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		memberUserID := uuid.Must(uuid.NewV7())

		request := dto.AddMemberRequest{
			UserID: memberUserID.String(),
			Role:   "viewer",
		}

		mockUseCase.On(
			"AddMember",
			mock.Anything,
			"engineering",
			actingUserID,
			memberUserID,
			workspacesDomain.RoleViewer,
		).Return(nil, workspacesDomain.ErrMemberAlreadyExists).Once()

		c, w := createTestContext(
			http.MethodPost, "/v1/workspaces/engineering/members", request, actingUserID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.AddMemberHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestWorkspaceHandler_RemoveMemberHandler(t *testing.T) {
	t.Run("Success_RemovesMember", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		memberUserID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RemoveMember", mock.Anything, "engineering", actingUserID, memberUserID).
			Return(nil).
			Once()

		c, w := createTestContext(
			http.MethodDelete,
			"/v1/workspaces/engineering/members/"+memberUserID.String(),
			nil,
			actingUserID,
		)
		c.Params = gin.Params{
			{Key: "slug", Value: "engineering"},
			{Key: "userID", Value: memberUserID.String()},
		}

		handler.RemoveMemberHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_CannotRemoveOwner", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())
		ownerUserID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RemoveMember", mock.Anything, "engineering", actingUserID, ownerUserID).
			Return(workspacesDomain.ErrCannotRemoveOwner).
			Once()

		c, w := createTestContext(
			http.MethodDelete,
			"/v1/workspaces/engineering/members/"+ownerUserID.String(),
			nil,
			actingUserID,
		)
		c.Params = gin.Params{
			{Key: "slug", Value: "engineering"},
			{Key: "userID", Value: ownerUserID.String()},
		}

		handler.RemoveMemberHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MalformedUserID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		actingUserID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(
			http.MethodDelete, "/v1/workspaces/engineering/members/nope", nil, actingUserID)
		c.Params = gin.Params{
			{Key: "slug", Value: "engineering"},
			{Key: "userID", Value: "nope"},
		}

		handler.RemoveMemberHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "RemoveMember")
	})
}

func TestWorkspaceHandler_ListMembersHandler(t *testing.T) {
	t.Run("Success_ReturnsMembers", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		workspaceID := uuid.Must(uuid.NewV7())
		members := []*workspacesDomain.Member{
			{
				ID:          uuid.Must(uuid.NewV7()),
				WorkspaceID: workspaceID,
				UserID:      uuid.Must(uuid.NewV7()),
				Role:        workspacesDomain.RoleDeveloper,
			},
			{
				ID:          uuid.Must(uuid.NewV7()),
				WorkspaceID: workspaceID,
				UserID:      uuid.Must(uuid.NewV7()),
				Role:        workspacesDomain.RoleAdmin,
			},
		}

		mockUseCase.On("ListMembers", mock.Anything, "engineering", userID, 0, 50).
			Return(members, nil).
			Once()

		c, w := createTestContext(
			http.MethodGet, "/v1/workspaces/engineering/members", nil, userID)
		c.Params = gin.Params{{Key: "slug", Value: "engineering"}}

		handler.ListMembersHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListMembersResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)
		assert.Equal(t, "developer", response.Data[0].Role)

		mockUseCase.AssertExpectations(t)
	})
}
