package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"surveyhub/internal/modules/auth"
	"surveyhub/internal/pkg/jwt"
	"surveyhub/internal/pkg/response"
)

// JWTAuth validates the access token and populates user_id, username and
// roles on the request context. The token is taken from the Authorization
// header; browser clients that rely on the HttpOnly cookie are covered by
// the cookie fallback.
func JWTAuth(signer *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code, msg := extractToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := signer.Verify(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)

		c.Next()
	}
}

func extractToken(c *gin.Context) (token, errCode, errMsg string) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
		}
		return parts[1], "", ""
	}

	if cookie, err := c.Cookie(auth.AccessCookieName); err == nil && cookie != "" {
		return cookie, "", ""
	}

	return "", "AUTH_HEADER_MISSING", "Authentication required"
}
