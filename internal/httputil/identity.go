package httputil

import (
	"context"

	"github.com/google/uuid"
)

// userIDKey is a context key type for storing the authenticated user ID.
type userIDKey struct{}

// WithUserID stores the authenticated user ID in the context.
// This is called by the identity middleware after validating the identity header.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID retrieves the authenticated user ID from the context.
// Returns (id, true) if an identity is present, or (uuid.Nil, false) if not.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}
