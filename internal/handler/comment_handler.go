package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/service"
	"github.com/alucardavid/samplemed-blog/internal/validator"
)

// CommentHandler handles comment-related HTTP requests. The author of
// a created comment is always the authenticated caller, regardless of
// the payload.
type CommentHandler struct {
	comments   service.CommentServiceInterface
	validator  *validator.Validator
	pagination Pagination
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments service.CommentServiceInterface, v *validator.Validator, pagination Pagination) *CommentHandler {
	return &CommentHandler{comments: comments, validator: v, pagination: pagination}
}

// CommentResponse represents a comment in the API response.
type CommentResponse struct {
	ID        int64         `json:"id"`
	ArticleID int64         `json:"article_id"`
	Author    *UserResponse `json:"author,omitempty"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

func toCommentResponse(cm *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        cm.ID,
		ArticleID: cm.ArticleID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt.Format(TimeFormat),
		UpdatedAt: cm.UpdatedAt.Format(TimeFormat),
	}
	if cm.Author != nil {
		author := toUserResponse(cm.Author)
		resp.Author = &author
	}
	return resp
}

type commentCreateRequest struct {
	ArticleID int64  `json:"article_id"`
	Content   string `json:"content"`
}

type commentUpdateRequest struct {
	Content string `json:"content"`
}

// List handles GET /api/v1/comments with filtering by article, author,
// and content substring. Results are ordered newest first.
func (h *CommentHandler) List(c *gin.Context) {
	filter := domain.CommentFilter{Content: c.Query("content")}
	if v := c.Query("article"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.AbortWithError(c, domain.NewValidationError("article must be a numeric id"))
			return
		}
		filter.ArticleID = n
	}
	if v := c.Query("author"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.AbortWithError(c, domain.NewValidationError("author must be a numeric id"))
			return
		}
		filter.AuthorID = n
	}

	page, size := h.pagination.page(c)
	comments, count, err := h.comments.List(c.Request.Context(), filter, size, (page-1)*size)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	results := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, envelope(c, count, page, size, results))
}

// Get handles GET /api/v1/comments/:id.
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrCommentNotFound)
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Create handles POST /api/v1/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		middleware.JSONError(c, http.StatusUnauthorized, "Authentication credentials were not provided", "")
		return
	}

	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}

	candidate := &domain.Comment{ArticleID: req.ArticleID, Content: req.Content}
	if err := h.validator.ValidateComment(candidate); err != nil {
		middleware.AbortWithError(c, validator.AsValidationError(err))
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), req.ArticleID, req.Content, identity.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Update handles PUT and PATCH /api/v1/comments/:id. Any authenticated
// caller may update any comment; see the service for why this stays
// permissive.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrCommentNotFound)
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if req.Content == "" {
		middleware.AbortWithError(c, domain.NewValidationError("content: content_required"))
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /api/v1/comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrCommentNotFound)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
