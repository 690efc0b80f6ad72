package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"surveyhub/internal/modules/auth"
)

func csrfRouter() *gin.Engine {
	router := gin.New()
	router.Use(CSRF())
	router.POST("/api/v1/auth/logout", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/auth/user", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestCSRF_MatchingTokenPasses(t *testing.T) {
	router := csrfRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.XSRFCookieName, Value: "tok-123"})
	req.Header.Set(csrfHeaderName, "tok-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRF_MissingHeaderRejected(t *testing.T) {
	router := csrfRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.XSRFCookieName, Value: "tok-123"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF_TOKEN_INVALID")
}

func TestCSRF_MissingCookieRejected(t *testing.T) {
	router := csrfRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set(csrfHeaderName, "tok-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF_TOKEN_MISSING")
}

func TestCSRF_SafeMethodSkipsCheck(t *testing.T) {
	router := csrfRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/auth/user", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
