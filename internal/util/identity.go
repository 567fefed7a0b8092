package util

import (
	"context"

	"github.com/gin-gonic/gin"
)

type userIDKey struct{}

// ContextUserIDKey is the gin context key holding the authenticated user id
const ContextUserIDKey = "user_id"

// WithUserID returns a copy of ctx carrying the authenticated user id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by WithUserID
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// CurrentUserID resolves the authenticated user of a gin request.
// The request context is authoritative; the gin key is kept for the request logger.
func CurrentUserID(c *gin.Context) (string, error) {
	if id, ok := UserIDFromContext(c.Request.Context()); ok {
		return id, nil
	}
	if id := c.GetString(ContextUserIDKey); id != "" {
		return id, nil
	}
	return "", ErrUnauthorized("User not authenticated")
}
