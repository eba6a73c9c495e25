package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/service"
	"github.com/alucardavid/samplemed-blog/internal/validator"
)

// KeywordHandler handles keyword-related HTTP requests.
type KeywordHandler struct {
	keywords   service.KeywordServiceInterface
	validator  *validator.Validator
	pagination Pagination
}

// NewKeywordHandler creates a new KeywordHandler.
func NewKeywordHandler(keywords service.KeywordServiceInterface, v *validator.Validator, pagination Pagination) *KeywordHandler {
	return &KeywordHandler{keywords: keywords, validator: v, pagination: pagination}
}

// KeywordResponse represents a keyword in the API response.
type KeywordResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toKeywordResponse(k *domain.Keyword) KeywordResponse {
	return KeywordResponse{ID: k.ID, Name: k.Name}
}

type keywordRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/keywords with optional name filtering.
func (h *KeywordHandler) List(c *gin.Context) {
	page, size := h.pagination.page(c)
	keywords, count, err := h.keywords.List(c.Request.Context(), c.Query("name"), size, (page-1)*size)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	results := make([]KeywordResponse, 0, len(keywords))
	for i := range keywords {
		results = append(results, toKeywordResponse(&keywords[i]))
	}
	c.JSON(http.StatusOK, envelope(c, count, page, size, results))
}

// Get handles GET /api/v1/keywords/:id.
func (h *KeywordHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrKeywordNotFound)
		return
	}

	keyword, err := h.keywords.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toKeywordResponse(keyword))
}

// Create handles POST /api/v1/keywords. Creation is get-or-create:
// posting an existing name succeeds and returns the existing keyword,
// so both of two equal-name creates answer 201 with the same id.
func (h *KeywordHandler) Create(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.ValidateKeywordName(req.Name); err != nil {
		middleware.AbortWithError(c, validator.AsValidationError(err))
		return
	}

	keyword, err := h.keywords.GetOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toKeywordResponse(keyword))
}

// Update handles PUT and PATCH /api/v1/keywords/:id.
func (h *KeywordHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrKeywordNotFound)
		return
	}

	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	if err := h.validator.ValidateKeywordName(req.Name); err != nil {
		middleware.AbortWithError(c, validator.AsValidationError(err))
		return
	}

	keyword, err := h.keywords.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toKeywordResponse(keyword))
}

// Delete handles DELETE /api/v1/keywords/:id.
func (h *KeywordHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		middleware.AbortWithError(c, domain.ErrKeywordNotFound)
		return
	}

	if err := h.keywords.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
