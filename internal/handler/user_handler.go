package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/service"
	"github.com/alucardavid/samplemed-blog/internal/validator"
)

// UserHandler handles user-related HTTP requests. Reads are public;
// registration is open; update and delete require authentication.
type UserHandler struct {
	users      service.UserServiceInterface
	validator  *validator.Validator
	pagination Pagination
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserServiceInterface, v *validator.Validator, pagination Pagination) *UserHandler {
	return &UserHandler{users: users, validator: v, pagination: pagination}
}

// UserResponse represents a user identity in the API response. The
// password credential is never part of any response.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type userUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	page, size := h.pagination.page(c)
	users, count, err := h.users.List(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, envelope(c, count, page, size, results))
}

// Get handles GET /api/v1/users/:id, returning the profile with
// article and comment counts.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrUserNotFound)
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Create handles POST /api/v1/users: open registration. The response
// is the issued token pair, never the stored credential.
func (h *UserHandler) Create(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.ValidateRegistration(req.Username, req.Email, req.Password); err != nil {
		middleware.AbortWithError(c, validator.AsValidationError(err))
		return
	}

	pair, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

// Update handles PUT and PATCH /api/v1/users/:id. Only the recognized
// profile fields are applied; unrecognized keys are ignored.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrUserNotFound)
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, domain.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/v1/users/:id. Owned articles and comments
// cascade away with the identity.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrUserNotFound)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
