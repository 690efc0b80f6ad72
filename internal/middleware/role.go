package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surveyhub/internal/domain"
	"surveyhub/internal/pkg/response"
)

// RequireRole ensures the authenticated user carries the given role. Role
// names come from the token claims, so a fresh grant only shows up after
// the current access token expires.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("roles")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Roles not found in token")
			c.Abort()
			return
		}

		roles, ok := raw.([]string)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Roles not found in token")
			c.Abort()
			return
		}

		for _, role := range roles {
			if role == requiredRole {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly requires the Admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
