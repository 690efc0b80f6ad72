package auth

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"surveyhub/internal/pkg/response"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
	XSRFCookieName    = "XSRF-TOKEN"
)

// CookieConfig controls how the session material is delivered to the
// browser. The refresh cookie is scoped to the refresh endpoint's path, so
// the browser never sends it anywhere else.
type CookieConfig struct {
	Secure      bool
	SameSite    http.SameSite
	RefreshPath string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// Handler is the HTTP boundary of the session manager. Token values travel in
// HTTP-only cookies, never in JSON bodies.
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterPublicRoutes covers the entry points that run before any session
// cookie exists.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

// RegisterSessionRoutes covers the cookie-authenticated transitions; the
// caller is expected to mount the anti-forgery guard on this group.
func (h *Handler) RegisterSessionRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/user", h.GetCurrentUser)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	userGroup := admin.Group("/users")
	{
		userGroup.GET("", h.ListUsers)
		userGroup.POST("/:id/roles", h.GrantRole)
		userGroup.DELETE("/:id/roles/:role", h.RevokeRole)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data", ve.Fields)
		case errors.Is(err, ErrUsernameTaken):
			response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "This username is already registered")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrUnknownRole):
			// Misconfiguration, not a user problem; keep the response opaque.
			log.Printf("register: unknown role %q", req.RoleName)
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	h.setSessionCookies(c, result.Tokens)
	response.Success(c, http.StatusCreated, gin.H{"user": toUserPublic(result.User)})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setSessionCookies(c, result.Tokens)
	response.Success(c, http.StatusOK, gin.H{"user": toUserPublic(result.User)})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshValue, _ := c.Cookie(RefreshCookieName)

	result, err := h.service.Refresh(c.Request.Context(), refreshValue, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredToken) {
			// A rejected refresh is the caller's signal to force a full
			// re-authentication.
			h.clearSessionCookies(c)
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	h.setSessionCookies(c, result.Tokens)
	response.Success(c, http.StatusOK, gin.H{"refreshed": true})
}

// Logout always reports success; it never confirms or denies that a session
// existed.
func (h *Handler) Logout(c *gin.Context) {
	refreshValue, _ := c.Cookie(RefreshCookieName)

	if err := h.service.Logout(c.Request.Context(), refreshValue, c.ClientIP()); err != nil {
		log.Printf("logout: revoke failed: %v", err)
	}

	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserPublic(user)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)

	users, total, err := h.service.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list users")
		return
	}

	public := make([]UserPublic, 0, len(users))
	for i := range users {
		public = append(public, toUserPublic(&users[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"users": public, "total": total, "page": page, "limit": limit})
}

func (h *Handler) GrantRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.GrantRole(c.Request.Context(), userID, req.RoleName); err != nil {
		if errors.Is(err, ErrUnknownRole) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ROLE", "Role does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ROLE_GRANT_FAILED", "Failed to grant role")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"granted": req.RoleName})
}

func (h *Handler) RevokeRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	roleName := c.Param("role")
	if err := h.service.RevokeRole(c.Request.Context(), userID, roleName); err != nil {
		if errors.Is(err, ErrUnknownRole) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ROLE", "Role does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ROLE_REVOKE_FAILED", "Failed to revoke role")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": roleName})
}

// setSessionCookies delivers the pair plus a fresh anti-forgery token. The
// XSRF cookie is readable by the client, which must echo it in the
// X-XSRF-TOKEN header on state-changing requests.
func (h *Handler) setSessionCookies(c *gin.Context, pair TokenPair) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessCookieName, pair.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(RefreshCookieName, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), h.cookies.RefreshPath, "", h.cookies.Secure, true)
	c.SetCookie(XSRFCookieName, uuid.NewString(), int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, false)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessCookieName, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, h.cookies.RefreshPath, "", h.cookies.Secure, true)
	c.SetCookie(XSRFCookieName, "", -1, "/", "", h.cookies.Secure, false)
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
