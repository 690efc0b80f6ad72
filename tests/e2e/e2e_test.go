package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"surveyhub/internal/database"
	"surveyhub/internal/middleware"
	"surveyhub/internal/modules/auth"
	"surveyhub/internal/modules/conductor"
	"surveyhub/internal/modules/participant"
	jwtsvc "surveyhub/internal/pkg/jwt"
	"surveyhub/internal/repository"
)

type TestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// session collects the cookies handed out by the auth endpoints so a test
// can act like a browser across requests.
type session struct {
	access  string
	refresh string
	xsrf    string
}

func setupTestSuite(t *testing.T) *TestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(t.Context(), db))

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	conductorRepo := repository.NewConductorRepository(db)
	participantRepo := repository.NewParticipantRepository(db)

	signer := jwtsvc.New("test_secret_key_32_characters_min", "surveyhub", "surveyhub-web", 15*time.Minute)

	authService := auth.NewService(userRepo, roleRepo, tokenRepo, signer, 7*24*time.Hour)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:      false,
		SameSite:    http.SameSiteStrictMode,
		RefreshPath: "/api/v1/auth/refresh",
		AccessTTL:   15 * time.Minute,
		RefreshTTL:  7 * 24 * time.Hour,
	})

	conductorHandler := conductor.NewHandler(conductor.NewService(conductorRepo))
	participantHandler := participant.NewHandler(participant.NewService(participantRepo))

	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	sessionGroup := v1.Group("/")
	sessionGroup.Use(middleware.CSRF())
	authHandler.RegisterSessionRoutes(sessionGroup)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(signer), middleware.CSRF())
	{
		authHandler.RegisterProtectedRoutes(protected)
		conductorHandler.RegisterProtectedRoutes(protected)
		participantHandler.RegisterProtectedRoutes(protected)
	}

	return &TestSuite{router: r, db: db}
}

func (s *TestSuite) request(t *testing.T, method, path string, body interface{}, sess *session) *httptest.ResponseRecorder {
	t.Helper()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	if sess != nil {
		if sess.access != "" {
			req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: sess.access})
		}
		if sess.refresh != "" {
			req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: sess.refresh})
		}
		if sess.xsrf != "" {
			req.AddCookie(&http.Cookie{Name: auth.XSRFCookieName, Value: sess.xsrf})
			req.Header.Set("X-XSRF-TOKEN", sess.xsrf)
		}
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// capture merges freshly issued cookies into the session, dropping cleared
// ones.
func (sess *session) capture(w *httptest.ResponseRecorder) {
	for _, c := range w.Result().Cookies() {
		switch c.Name {
		case auth.AccessCookieName:
			sess.access = c.Value
		case auth.RefreshCookieName:
			sess.refresh = c.Value
		case auth.XSRFCookieName:
			sess.xsrf = c.Value
		}
	}
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func TestSessionLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	sess := &session{}

	t.Run("register opens a session", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "casey",
			"email":    "casey@example.com",
			"password": "Sup3r$ecret",
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)

		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "casey", user["username"])

		sess.capture(w)
		assert.NotEmpty(t, sess.access, "access cookie must be set")
		assert.NotEmpty(t, sess.refresh, "refresh cookie must be set")
		assert.NotEmpty(t, sess.xsrf, "anti-forgery cookie must be set")

		// Tokens never appear in the body.
		assert.NotContains(t, w.Body.String(), sess.refresh)
		assert.NotContains(t, w.Body.String(), sess.access)
	})

	firstSession := &session{}

	t.Run("login revokes the standing session", func(t *testing.T) {
		*firstSession = *sess

		w := suite.request(t, "POST", "/api/v1/auth/login", map[string]interface{}{
			"username": "casey",
			"password": "Sup3r$ecret",
		}, nil)

		require.Equal(t, http.StatusOK, w.Code)
		sess.capture(w)
		assert.NotEqual(t, firstSession.refresh, sess.refresh, "login must mint a fresh refresh token")

		// The pre-login refresh token is dead.
		w = suite.request(t, "POST", "/api/v1/auth/refresh", nil, firstSession)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REFRESH_TOKEN")
	})

	t.Run("access cookie reaches protected routes", func(t *testing.T) {
		w := suite.request(t, "GET", "/api/v1/auth/user", nil, sess)

		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "casey@example.com", user["email"])
	})

	t.Run("refresh rotates and the old token is single-use", func(t *testing.T) {
		before := &session{}
		*before = *sess

		w := suite.request(t, "POST", "/api/v1/auth/refresh", nil, sess)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		sess.capture(w)
		assert.NotEqual(t, before.refresh, sess.refresh, "refresh must rotate the token")

		// Replaying the consumed token fails.
		w = suite.request(t, "POST", "/api/v1/auth/refresh", nil, before)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh without anti-forgery header is rejected", func(t *testing.T) {
		naked := &session{refresh: sess.refresh}
		w := suite.request(t, "POST", "/api/v1/auth/refresh", nil, naked)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("logout ends the session and is idempotent", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/auth/logout", nil, sess)
		require.Equal(t, http.StatusOK, w.Code)

		// The refresh token no longer works.
		w = suite.request(t, "POST", "/api/v1/auth/refresh", nil, sess)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// Logging out again still reports success.
		w = suite.request(t, "POST", "/api/v1/auth/logout", nil, sess)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLoginDoesNotLeakAccounts(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.request(t, "POST", "/api/v1/auth/register", map[string]interface{}{
		"username": "existing",
		"email":    "existing@example.com",
		"password": "Sup3r$ecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := suite.request(t, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "existing",
		"password": "WrongPass1!",
	}, nil)
	unknownUser := suite.request(t, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "nobody",
		"password": "WrongPass1!",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String(),
		"unknown user and wrong password must be indistinguishable")
}

func TestDuplicateRegistration(t *testing.T) {
	suite := setupTestSuite(t)

	body := map[string]interface{}{
		"username": "taken",
		"email":    "taken@example.com",
		"password": "Sup3r$ecret",
	}
	w := suite.request(t, "POST", "/api/v1/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request(t, "POST", "/api/v1/auth/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "USERNAME_EXISTS")

	body["username"] = "different"
	w = suite.request(t, "POST", "/api/v1/auth/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_EXISTS")
}

func TestProfileFlows(t *testing.T) {
	suite := setupTestSuite(t)

	register := func(t *testing.T, username, role string) *session {
		t.Helper()
		w := suite.request(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"username": username,
			"email":    username + "@example.com",
			"password": "Sup3r$ecret",
			"roleName": role,
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		sess := &session{}
		sess.capture(w)
		return sess
	}

	t.Run("conductor profile", func(t *testing.T) {
		sess := register(t, "conductor1", "Conducting")

		w := suite.request(t, "POST", "/api/v1/conductors/register", map[string]interface{}{
			"name":          "Field Research Lab",
			"conductorType": "institute",
			"contactEmail":  "lab@example.com",
		}, sess)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		// One profile per user.
		w = suite.request(t, "POST", "/api/v1/conductors/register", map[string]interface{}{
			"name":          "Second Lab",
			"conductorType": "company",
			"contactEmail":  "lab@example.com",
		}, sess)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = suite.request(t, "GET", "/api/v1/conductors/current", nil, sess)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		profile := resp.Data["conductor"].(map[string]interface{})
		assert.Equal(t, "Field Research Lab", profile["name"])
	})

	t.Run("participant profile with skills", func(t *testing.T) {
		sess := register(t, "participant1", "Participating")

		w := suite.request(t, "POST", "/api/v1/participants/register", map[string]interface{}{
			"experienceLevel": "intermediate",
			"isActive":        true,
		}, sess)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		resp := parseResponse(t, w)
		profile := resp.Data["participant"].(map[string]interface{})
		participantID := int64(profile["id"].(float64))

		skillsPath := "/api/v1/participants/" + strconv.FormatInt(participantID, 10) + "/skills"
		w = suite.request(t, "POST", skillsPath,
			map[string]interface{}{"skillName": "statistics", "proficiency": 4}, sess)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		// Out-of-range proficiency is rejected at binding.
		w = suite.request(t, "POST", skillsPath,
			map[string]interface{}{"skillName": "stats", "proficiency": 9}, sess)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
