package handler

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination carries the page-size limits list endpoints enforce.
type Pagination struct {
	PageSize    int
	MaxPageSize int
}

// PaginatedResponse is the envelope every list endpoint returns.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// page resolves the requested page and page size, clamping the size to
// the configured maximum.
func (p Pagination) page(c *gin.Context) (page, size int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}

	size = p.PageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		size = v
	}
	if size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	return page, size
}

// envelope wraps results in the paginated response shape with next and
// previous links derived from the current request URL.
func envelope(c *gin.Context, count int64, page, size int, results interface{}) PaginatedResponse {
	resp := PaginatedResponse{Count: count, Results: results}

	if int64(page*size) < count {
		resp.Next = pageURL(c.Request.URL, page+1)
	}
	if page > 1 {
		resp.Previous = pageURL(c.Request.URL, page-1)
	}
	return resp
}

func pageURL(u *url.URL, page int) *string {
	copied := *u
	q := copied.Query()
	q.Set("page", strconv.Itoa(page))
	copied.RawQuery = q.Encode()
	s := copied.String()
	return &s
}

// pathID parses the numeric id path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
