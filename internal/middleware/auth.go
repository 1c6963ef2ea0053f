package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/pkg/apperror"
	"trackzen.io/backend/pkg/response"
	"trackzen.io/backend/pkg/token"
)

// UserFinder is the part of the user repository the middleware needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type AuthMiddleware struct {
	users  UserFinder
	secret string
}

func NewAuthMiddleware(users UserFinder, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		secret: secret,
	}
}

// RequireAuth verifies the bearer token, reloads the caller and stores the
// ID, current role and user under "user_id", "role" and "user". Deactivated
// accounts are rejected with 403.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.Fail(c, http.StatusUnauthorized, "authorization required")
			c.Abort()
			return
		}

		claims, err := token.Parse(m.secret, tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		user, ok := m.loadUser(c, claims.Subject)
		if !ok {
			return
		}
		if !user.IsActive {
			response.Fail(c, http.StatusForbidden, "account is deactivated")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("role", user.Role.Name)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRoles allows the request only when the caller holds one of roles.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get("user")
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		u, ok := user.(*entity.User)
		if !ok || !hasRole(u.Role.Name, roles) {
			response.Fail(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// loadUser reads the caller fresh so role changes and deactivation apply to
// tokens that are still valid.
func (m *AuthMiddleware) loadUser(c *gin.Context, subject string) (*entity.User, bool) {
	userID, err := uuid.Parse(subject)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "invalid token subject")
		c.Abort()
		return nil, false
	}

	user, err := m.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.Fail(c, http.StatusUnauthorized, "user not found")
		} else {
			response.Error(c, err)
		}
		c.Abort()
		return nil, false
	}
	return user, true
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(entity.RoleAdmin)
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
