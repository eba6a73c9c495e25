package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/auth"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
)

func newTokens() *auth.TokenService {
	return auth.NewTokenService("test-secret", time.Minute, time.Hour)
}

func identityEcho(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID, "username": identity.Username})
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens()
	router := gin.New()
	router.GET("/api/v1/protected", middleware.RequireAuth(tokens), identityEcho)

	t.Run("no header answers 401 with the canonical message", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		resp := errorBody(t, w)
		assert.Equal(t, "Authentication credentials were not provided", resp.Error)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "/api/v1/protected", resp.Path)
	})

	t.Run("header without bearer prefix is malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Token abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer token malformed", errorBody(t, w).Error)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token", errorBody(t, w).Error)
	})

	t.Run("valid token exposes the identity", func(t *testing.T) {
		pair, err := tokens.Issue(&domain.User{ID: 5, Username: "maria"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 5, body["user_id"])
		assert.Equal(t, "maria", body["username"])
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		pair, err := tokens.Issue(&domain.User{ID: 5, Username: "maria"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Refresh)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
