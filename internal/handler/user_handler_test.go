package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/handler"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/mocks"
	"github.com/alucardavid/samplemed-blog/internal/service"
	"github.com/alucardavid/samplemed-blog/internal/validator"
)

func newUserRouter(svc service.UserServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.NoRoute(middleware.NoRoute())

	h := handler.NewUserHandler(svc, validator.NewValidator(), testPagination)
	v1 := router.Group("/api/v1")
	v1.GET("/users", h.List)
	v1.GET("/users/:id", h.Get)
	v1.POST("/users", h.Create)
	v1.PUT("/users/:id", h.Update)
	v1.PATCH("/users/:id", h.Update)
	v1.DELETE("/users/:id", h.Delete)
	return router
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("registration returns the token pair", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("Register", mock.Anything, service.RegisterInput{
			Username:  "maria",
			Email:     "maria@example.com",
			Password:  "s3cretpass",
			FirstName: "Maria",
			LastName:  "Silva",
		}).Return(&domain.TokenPair{Access: "a", Refresh: "r"}, nil)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		body := `{"username":"maria","email":"maria@example.com","password":"s3cretpass","first_name":"Maria","last_name":"Silva"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var pair domain.TokenPair
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
		assert.Equal(t, "a", pair.Access)
		assert.Equal(t, "r", pair.Refresh)
	})

	t.Run("short password fails validation before the service runs", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		body := `{"username":"maria","email":"maria@example.com","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "validation_error", resp.Detail)
	})

	t.Run("duplicate username surfaces as a validation error", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, domain.NewValidationError("Error creating user: username already exists"))

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		body := `{"username":"maria","email":"maria@example.com","password":"s3cretpass"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Error creating user: username already exists", resp.Error)
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("profile includes activity counts", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("GetProfile", mock.Anything, int64(12)).Return(&domain.UserProfile{
			ID:            12,
			Username:      "maria",
			ArticlesCount: 3,
			CommentsCount: 7,
		}, nil)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/12", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var profile domain.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, int64(3), profile.ArticlesCount)
		assert.Equal(t, int64(7), profile.CommentsCount)
	})

	t.Run("missing user renders the structured 404", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("GetProfile", mock.Anything, int64(404)).Return(nil, domain.ErrUserNotFound)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/404", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "User not found", resp.Error)
		assert.Equal(t, "user_not_found", resp.Detail)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("unrecognized payload keys are ignored", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("Update", mock.Anything, int64(12), mock.MatchedBy(func(p domain.UserPatch) bool {
			return p.Email != nil && *p.Email == "new@example.com" && p.Username == nil
		})).Return(&domain.User{ID: 12, Username: "maria", Email: "new@example.com"}, nil)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		body := `{"email":"new@example.com","password":"ignored","role":"admin"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/12", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp handler.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "new@example.com", resp.Email)
	})

	t.Run("PATCH reaches the same partial update", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("Update", mock.Anything, int64(12), mock.MatchedBy(func(p domain.UserPatch) bool {
			return p.FirstName != nil && *p.FirstName == "Maria" && p.Email == nil
		})).Return(&domain.User{ID: 12, Username: "maria", FirstName: "Maria"}, nil)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/12",
			bytes.NewBufferString(`{"first_name":"Maria"}`))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_Responses(t *testing.T) {
	t.Run("list responses never carry credentials", func(t *testing.T) {
		svc := mocks.NewMockUserService(t)
		svc.On("List", mock.Anything, 10, 0).
			Return([]domain.User{{ID: 1, Username: "maria", PasswordHash: "$2a$10$hash"}}, int64(1), nil)

		router := newUserRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")
		assert.NotContains(t, w.Body.String(), "password")
	})
}
