package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"surveyhub/internal/modules/auth"
	"surveyhub/internal/pkg/response"
)

const csrfHeaderName = "X-XSRF-TOKEN"

// CSRF implements the double-submit cookie check: state-changing requests
// must echo the readable XSRF-TOKEN cookie in the X-XSRF-TOKEN header.
// Safe methods pass through untouched. Login and register are exempt by
// route placement since no session cookie exists yet.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(auth.XSRFCookieName)
		if err != nil || cookie == "" {
			response.Error(c, http.StatusForbidden, "CSRF_TOKEN_MISSING", "Anti-forgery token missing")
			c.Abort()
			return
		}

		header := c.GetHeader(csrfHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			response.Error(c, http.StatusForbidden, "CSRF_TOKEN_INVALID", "Anti-forgery token mismatch")
			c.Abort()
			return
		}

		c.Next()
	}
}
