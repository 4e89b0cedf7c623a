package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MedicApp/cache"
	"MedicApp/logger"
	"MedicApp/models"
	"MedicApp/session"
	"MedicApp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(models.NewNotFoundError("missing")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(models.NewValidationError("bad", nil)))
	assert.Equal(t, http.StatusForbidden, StatusFor(models.NewForbiddenError("no")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(models.NewBackendError(errors.New("down"))))
	assert.Equal(t, http.StatusBadGateway, StatusFor(errors.New("plain")))
}

func TestRespondError_AlertBody(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		RespondError(c, logger.Discard(), models.NewNotFoundError("Blog not found"))
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Blog not found","alert":{"title":"Error","message":"Blog not found","actions":["OK"]}}`, w.Body.String())
}

func TestValidateBearerToken(t *testing.T) {
	router := gin.New()
	router.GET("/", ValidateBearerToken("api-key", logger.Discard()), ok)

	cases := map[string]int{
		"":               http.StatusUnauthorized,
		"api-key":        http.StatusUnauthorized,
		"Bearer wrong":   http.StatusUnauthorized,
		"Bearer api-key": http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, serve(router, req).Code, header)
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	router := gin.New()
	router.GET("/", NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1}, logger.Discard()), ok)

	request := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(DeviceTokenHeader, token)
		return serve(router, req).Code
	}

	assert.Equal(t, http.StatusOK, request("device-a"))
	assert.Equal(t, http.StatusTooManyRequests, request("device-a"))
	assert.Equal(t, http.StatusOK, request("device-b"))
}

type stubRoles struct {
	role models.Role
	err  error
}

func (s stubRoles) ResolveRole(context.Context, string) (models.Role, error) {
	return s.role, s.err
}

func newAuthRouter(t *testing.T, roles RoleResolver, handlers ...gin.HandlerFunc) (*gin.Engine, *utils.TokenMaker, *session.Manager) {
	t.Helper()
	tokens, err := utils.NewTokenMaker("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	sessions := session.NewManager(cache.NewMemoryCache())
	log := logger.Discard()

	chain := append([]gin.HandlerFunc{DeviceAuthMiddleware(tokens, sessions, log), SessionRequired(roles, log)}, handlers...)
	router := gin.New()
	router.GET("/", append(chain, func(c *gin.Context) {
		userID, err := ExtractUserIDFromContext(c.Request.Context())
		require.NoError(t, err)
		role, err := ExtractUserRoleFromContext(c.Request.Context())
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})...)
	return router, tokens, sessions
}

func loggedInRequest(t *testing.T, tokens *utils.TokenMaker, sessions *session.Manager, userID string) *http.Request {
	t.Helper()
	token, claims, err := tokens.GenerateDeviceToken()
	require.NoError(t, err)
	if userID != "" {
		sess, err := sessions.For(claims.DeviceID)
		require.NoError(t, err)
		require.NoError(t, sess.SetCurrentUser(context.Background(), userID))
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DeviceTokenHeader, token)
	return req
}

func TestSessionRequired(t *testing.T) {
	router, tokens, sessions := newAuthRouter(t, stubRoles{role: models.RolePatient})

	w := serve(router, loggedInRequest(t, tokens, sessions, "user-1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"patient"}`, w.Body.String())

	w = serve(router, loggedInRequest(t, tokens, sessions, ""))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "login", body.Redirect)
}

func TestSessionRequired_ClearsUnresolvableUser(t *testing.T) {
	router, tokens, sessions := newAuthRouter(t, stubRoles{err: models.NewNotFoundError("Profile not found")})

	token, claims, err := tokens.GenerateDeviceToken()
	require.NoError(t, err)
	sess, err := sessions.For(claims.DeviceID)
	require.NoError(t, err)
	require.NoError(t, sess.SetCurrentUser(context.Background(), "ghost"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DeviceTokenHeader, token)
	w := serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, loggedIn, err := sess.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestSessionRequired_BackendFailure(t *testing.T) {
	router, tokens, sessions := newAuthRouter(t, stubRoles{err: models.NewBackendError(errors.New("down"))})

	w := serve(router, loggedInRequest(t, tokens, sessions, "user-1"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	router, tokens, sessions := newAuthRouter(t, stubRoles{role: models.RolePatient}, RoleAuthMiddleware(models.RoleDoctor, logger.Discard()))

	w := serve(router, loggedInRequest(t, tokens, sessions, "user-1"))
	require.Equal(t, http.StatusForbidden, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Only doctors can do this", body.Error)
	assert.Empty(t, body.Redirect)
}
