package middleware

import (
	"context"
	"net/http"
	"strings"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// ContextClaimsKey holds the verified token claims of the request
const ContextClaimsKey = "claims"

// Authenticator verifies a session token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid session token.
// The token is read from the session cookie first, then from a Bearer Authorization header.
// The user id is attached to the request context for the handlers.
func AuthMiddleware(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c, cookieName)
		if err != nil {
			util.AbortWithError(c, err)
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			util.AbortWithError(c, err)
			return
		}

		c.Set(util.ContextUserIDKey, claims.UserID)
		c.Set(ContextClaimsKey, claims)
		c.Request = c.Request.WithContext(util.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

func extractToken(c *gin.Context, cookieName string) (string, error) {
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token, nil
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", util.ErrUnauthorized("Missing authentication token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", util.NewAppError(http.StatusUnauthorized, util.ErrCodeUnauthorized, "Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}
