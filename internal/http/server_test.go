package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/workspaces/internal/config"
	credentialsHTTP "github.com/allisson/workspaces/internal/credentials/http"
	credentialsMocks "github.com/allisson/workspaces/internal/credentials/usecase/mocks"
	tasksHTTP "github.com/allisson/workspaces/internal/tasks/http"
	tasksMocks "github.com/allisson/workspaces/internal/tasks/usecase/mocks"
	workspacesDomain "github.com/allisson/workspaces/internal/workspaces/domain"
	workspacesHTTP "github.com/allisson/workspaces/internal/workspaces/http"
	workspacesMocks "github.com/allisson/workspaces/internal/workspaces/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testServer bundles a routed server with the mocked use cases behind it.
type testServer struct {
	handler     http.Handler
	workspaces  *workspacesMocks.MockWorkspaceUseCase
	tasks       *tasksMocks.MockTaskUseCase
	credentials *credentialsMocks.MockCredentialUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: 0}

	workspaceUseCase := &workspacesMocks.MockWorkspaceUseCase{}
	taskUseCase := &tasksMocks.MockTaskUseCase{}
	credentialUseCase := &credentialsMocks.MockCredentialUseCase{}

	server := NewServer(
		cfg,
		logger,
		nil,
		workspacesHTTP.NewWorkspaceHandler(workspaceUseCase, logger),
		tasksHTTP.NewTaskHandler(taskUseCase, logger),
		credentialsHTTP.NewCredentialHandler(credentialUseCase, logger),
		nil,
	)

	return &testServer{
		handler:     server.GetHandler(),
		workspaces:  workspaceUseCase,
		tasks:       taskUseCase,
		credentials: credentialUseCase,
	}
}

func (s *testServer) do(method, path string, userID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func TestServer_HealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("Health", func(t *testing.T) {
		w := s.do(http.MethodGet, "/health", uuid.Nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Ready_NoDatabaseConfigured", func(t *testing.T) {
		w := s.do(http.MethodGet, "/ready", uuid.Nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestServer_IdentityEnforcement(t *testing.T) {
	s := newTestServer(t)

	t.Run("Error_MissingHeader", func(t *testing.T) {
		w := s.do(http.MethodGet, "/v1/workspaces", uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		s.workspaces.AssertNotCalled(t, "List")
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")

		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_IdentityReachesHandler", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())

		s.workspaces.On("List", mock.Anything, userID, 0, 50).
			Return([]*workspacesDomain.Workspace{}, nil).
			Once()

		w := s.do(http.MethodGet, "/v1/workspaces", userID)
		assert.Equal(t, http.StatusOK, w.Code)

		s.workspaces.AssertExpectations(t)
	})
}

func TestServer_Routing(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.Must(uuid.NewV7())

	t.Run("CredentialResolveRoute", func(t *testing.T) {
		s.credentials.On("Resolve", mock.Anything, "engineering", userID, "swarm_api_key").
			Return("sk-live-1234", nil).
			Once()

		w := s.do(http.MethodGet, "/v1/workspaces/engineering/credentials/swarm_api_key", userID)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "sk-live-1234", body["value"])
	})

	t.Run("TaskDeleteRoute", func(t *testing.T) {
		taskID := uuid.Must(uuid.NewV7())

		s.tasks.On("Delete", mock.Anything, taskID, userID).Return(nil).Once()

		w := s.do(http.MethodDelete, "/v1/tasks/"+taskID.String(), userID)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		w := s.do(http.MethodGet, "/v1/unknown", userID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
