// Package http provides the HTTP server, routing, and request middleware.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/workspaces/internal/errors"
	"github.com/allisson/workspaces/internal/httputil"
)

// identityHeader carries the ID of the user acting on the request. The
// gateway in front of this service authenticates users and forwards their
// identity in this header.
const identityHeader = "X-User-ID"

// IdentityMiddleware extracts the acting user from the identity header and
// stores it in the request context.
//
// The middleware:
// 1. Reads the X-User-ID header set by the authenticating gateway
// 2. Rejects requests without a header or with a non-UUID value
// 3. Stores the user ID in the request context for handlers via httputil.GetUserID()
//
// Error handling:
//   - Missing header → 401 Unauthorized
//   - Malformed UUID → 401 Unauthorized
func IdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(identityHeader)
		if header == "" {
			logger.Debug("identity check failed: missing identity header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			logger.Debug("identity check failed: malformed user id",
				slog.String("header", header))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := httputil.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequestIDMiddleware assigns a unique request ID to each request and echoes
// it back in the X-Request-Id response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return requestid.New()
}

// LoggingMiddleware logs each HTTP request with method, path, status, and
// duration. The request ID is included so log lines can be correlated with
// client reports.
func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", requestid.Get(c)),
			slog.String("remote_addr", c.ClientIP()),
		)
	}
}

// RecoveryMiddleware recovers from panics and returns a 500 response.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Error("panic recovered",
			slog.Any("error", err),
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	})
}
