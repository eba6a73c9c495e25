package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/service"
)

// TokenRefresher exchanges a refresh token for a fresh pair. Satisfied
// by auth.TokenService.
type TokenRefresher interface {
	Refresh(refreshToken string) (*domain.TokenPair, error)
}

// TokenHandler handles the token obtain and refresh endpoints.
type TokenHandler struct {
	users  service.UserServiceInterface
	tokens TokenRefresher
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(users service.UserServiceInterface, tokens TokenRefresher) *TokenHandler {
	return &TokenHandler{users: users, tokens: tokens}
}

type obtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Obtain handles POST /api/v1/token: verifies credentials and returns
// an access+refresh pair.
func (h *TokenHandler) Obtain(c *gin.Context) {
	var req obtainRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		middleware.AbortWithError(c, domain.NewValidationError("username and password are required"))
		return
	}

	pair, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /api/v1/token/refresh.
func (h *TokenHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		middleware.AbortWithError(c, domain.NewValidationError("refresh token is required"))
		return
	}

	pair, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
