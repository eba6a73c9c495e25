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

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articles   service.ArticleServiceInterface
	validator  *validator.Validator
	pagination Pagination
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles service.ArticleServiceInterface, v *validator.Validator, pagination Pagination) *ArticleHandler {
	return &ArticleHandler{articles: articles, validator: v, pagination: pagination}
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle"`
	Content   string            `json:"content"`
	Type      int               `json:"type"`
	Status    int               `json:"status"`
	Keywords  []KeywordResponse `json:"keywords"`
	Author    *UserResponse     `json:"author,omitempty"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	keywords := make([]KeywordResponse, 0, len(a.Keywords))
	for _, k := range a.Keywords {
		keywords = append(keywords, toKeywordResponse(&k))
	}

	resp := ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Subtitle:  a.Subtitle,
		Content:   a.Content,
		Type:      int(a.Type),
		Status:    int(a.Status),
		Keywords:  keywords,
		CreatedAt: a.CreatedAt.Format(TimeFormat),
		UpdatedAt: a.UpdatedAt.Format(TimeFormat),
	}
	if a.Author != nil {
		author := toUserResponse(a.Author)
		resp.Author = &author
	}
	return resp
}

func toArticleResponses(articles []domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i]))
	}
	return out
}

type articleCreateRequest struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Content  string   `json:"content"`
	Type     int      `json:"type"`
	Status   int      `json:"status"`
	Keywords []string `json:"keywords"`
}

type articleUpdateRequest struct {
	Title    *string  `json:"title"`
	Subtitle *string  `json:"subtitle"`
	Content  *string  `json:"content"`
	Type     *int     `json:"type"`
	Status   *int     `json:"status"`
	Keywords []string `json:"keywords"`
}

// List handles GET /api/v1/articles. Reads are public and support
// field filtering plus page-based pagination.
func (h *ArticleHandler) List(c *gin.Context) {
	filter, ok := parseArticleFilter(c)
	if !ok {
		return
	}

	page, size := h.pagination.page(c)
	articles, count, err := h.articles.List(c.Request.Context(), filter, size, (page-1)*size)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope(c, count, page, size, toArticleResponses(articles)))
}

// Get handles GET /api/v1/articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrArticleNotFound)
		return
	}

	article, err := h.articles.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(article))
}

// ByAuthor handles GET /api/v1/articles/author/:author_id.
func (h *ArticleHandler) ByAuthor(c *gin.Context) {
	authorID, ok := pathID(c, "author_id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrUserNotFound)
		return
	}

	articles, err := h.articles.GetByAuthor(c.Request.Context(), authorID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// Create handles POST /api/v1/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		middleware.JSONError(c, http.StatusUnauthorized, "Authentication credentials were not provided", "")
		return
	}

	var req articleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}

	candidate := &domain.Article{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Type:     domain.ArticleType(req.Type),
		Status:   domain.ArticleStatus(req.Status),
	}
	if err := h.validator.ValidateArticle(candidate); err != nil {
		middleware.AbortWithError(c, validator.AsValidationError(err))
		return
	}

	article, err := h.articles.Create(c.Request.Context(), service.ArticleInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Type:     domain.ArticleType(req.Type),
		Status:   domain.ArticleStatus(req.Status),
		Keywords: req.Keywords,
	}, identity.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PUT and PATCH /api/v1/articles/:id. Only fields
// present in the payload are replaced.
func (h *ArticleHandler) Update(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		middleware.JSONError(c, http.StatusUnauthorized, "Authentication credentials were not provided", "")
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrArticleNotFound)
		return
	}

	var req articleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}

	patch := domain.ArticlePatch{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Keywords: req.Keywords,
	}
	if req.Type != nil {
		t := domain.ArticleType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := domain.ArticleStatus(*req.Status)
		patch.Status = &s
	}

	article, err := h.articles.Update(c.Request.Context(), id, patch, identity.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /api/v1/articles/:id.
func (h *ArticleHandler) Delete(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		middleware.JSONError(c, http.StatusUnauthorized, "Authentication credentials were not provided", "")
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrArticleNotFound)
		return
	}

	if err := h.articles.Delete(c.Request.Context(), id, identity.UserID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseArticleFilter reads the declared filter fields from the query
// string. Enum filters out of range fail before any service runs.
func parseArticleFilter(c *gin.Context) (domain.ArticleFilter, bool) {
	filter := domain.ArticleFilter{
		Title:    c.Query("title"),
		Subtitle: c.Query("subtitle"),
		Keyword:  c.Query("keywords"),
	}

	if v := c.Query("type"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !domain.IsValidArticleType(domain.ArticleType(n)) {
			middleware.AbortWithError(c, domain.ErrInvalidArticleType)
			return filter, false
		}
		t := domain.ArticleType(n)
		filter.Type = &t
	}
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !domain.IsValidArticleStatus(domain.ArticleStatus(n)) {
			middleware.AbortWithError(c, domain.ErrInvalidArticleStatus)
			return filter, false
		}
		s := domain.ArticleStatus(n)
		filter.Status = &s
	}
	if v := c.Query("author"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.AbortWithError(c, domain.NewValidationError("author must be a numeric id"))
			return filter, false
		}
		filter.AuthorID = n
	}
	return filter, true
}
