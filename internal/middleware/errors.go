package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/auth"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/logger"
)

// APIPrefix marks the paths whose failures must always render as
// structured JSON. Non-API paths keep plain rendering.
const APIPrefix = "/api/"

// ErrorResponse is the wire shape of every API error, no matter where
// the failure originated.
type ErrorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code"`
	Path       string `json:"path"`
}

// JSONError writes the structured error shape and aborts the request.
func JSONError(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:      message,
		Detail:     detail,
		StatusCode: status,
		Path:       c.Request.URL.Path,
	})
}

// AbortWithError translates any error into the wire error shape.
// Business failures keep their classified status; everything else is an
// unhandled fault and renders as a 500.
func AbortWithError(c *gin.Context, err error) {
	var businessErr *domain.Error
	if errors.As(err, &businessErr) {
		JSONError(c, businessErr.Status, businessErr.Detail, businessErr.Code)
		return
	}
	if errors.Is(err, auth.ErrInvalidToken) {
		JSONError(c, http.StatusUnauthorized, "Invalid or expired token", "")
		return
	}

	logger.WithRequestID(GetRequestID(c)).Error("unhandled error",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))
	JSONError(c, http.StatusInternalServerError, "Server error", "An internal server error occurred.")
}

// Recovery turns panics into the structured 500 shape on API paths and
// a bare 500 elsewhere.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithRequestID(GetRequestID(c)).Error("panic recovered",
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered))

		if strings.HasPrefix(c.Request.URL.Path, APIPrefix) {
			JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred.")
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// NoRoute renders unmatched API paths as the structured 404 shape,
// intercepting the raw response that would otherwise bypass the
// exception path.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, APIPrefix) {
			JSONError(c, http.StatusNotFound, "Not found",
				"The requested resource was not found on this server.")
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	}
}
