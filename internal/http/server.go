package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/workspaces/internal/config"
	credentialsHTTP "github.com/allisson/workspaces/internal/credentials/http"
	"github.com/allisson/workspaces/internal/metrics"
	tasksHTTP "github.com/allisson/workspaces/internal/tasks/http"
	workspacesHTTP "github.com/allisson/workspaces/internal/workspaces/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes registered.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	workspaceHandler *workspacesHTTP.WorkspaceHandler,
	taskHandler *tasksHTTP.TaskHandler,
	credentialHandler *credentialsHTTP.CredentialHandler,
	meterProvider metric.MeterProvider,
) *Server {
	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	// Health and readiness endpoints bypass identity checks.
	router.GET("/health", healthHandler())
	router.GET("/ready", readinessHandler(db))

	v1 := router.Group("/v1")
	v1.Use(IdentityMiddleware(logger))

	v1.POST("/workspaces", workspaceHandler.CreateHandler)
	v1.GET("/workspaces", workspaceHandler.ListHandler)
	v1.GET("/workspaces/:slug", workspaceHandler.GetHandler)
	v1.DELETE("/workspaces/:slug", workspaceHandler.DeleteHandler)
	v1.POST("/workspaces/:slug/members", workspaceHandler.AddMemberHandler)
	v1.GET("/workspaces/:slug/members", workspaceHandler.ListMembersHandler)
	v1.DELETE("/workspaces/:slug/members/:userID", workspaceHandler.RemoveMemberHandler)

	v1.POST("/workspaces/:slug/tasks", taskHandler.CreateHandler)
	v1.GET("/workspaces/:slug/tasks", taskHandler.ListHandler)
	v1.GET("/tasks/:id", taskHandler.GetHandler)
	v1.PUT("/tasks/:id", taskHandler.UpdateHandler)
	v1.DELETE("/tasks/:id", taskHandler.DeleteHandler)

	v1.PUT("/workspaces/:slug/credentials/:field", credentialHandler.StoreHandler)
	v1.GET("/workspaces/:slug/credentials/:field", credentialHandler.ResolveHandler)
	v1.DELETE("/workspaces/:slug/credentials/:field", credentialHandler.DeleteHandler)
	v1.GET("/workspaces/:slug/credentials", credentialHandler.ListHandler)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// readinessHandler reports readiness to serve traffic by pinging the database.
func readinessHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
