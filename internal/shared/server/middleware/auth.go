package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/auth"
	"projectdocs-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// Auth validates bearer tokens and stores identity in context.
// Auth endpoints and health stay reachable without a token.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/") || path == "/api/v1/health" || path == "/api/v1/metrics" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the display name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
