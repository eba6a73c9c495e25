package domain

import "net/http"

// Error is a classified business failure. It carries a machine-readable
// code and the HTTP status it maps to at the API boundary, as opposed to
// an unexpected fault which always surfaces as a 500.
type Error struct {
	Code   string
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Is lets errors.Is match any error of the same code, so callers can
// compare against the sentinel values below even after wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	// ErrArticleNotFound is returned when an article id does not resolve.
	ErrArticleNotFound = &Error{Code: "article_not_found", Status: http.StatusNotFound, Detail: "Article not found"}

	// ErrCommentNotFound is returned when a comment id does not resolve.
	ErrCommentNotFound = &Error{Code: "comment_not_found", Status: http.StatusNotFound, Detail: "Comment not found"}

	// ErrKeywordNotFound is returned when a keyword id does not resolve.
	ErrKeywordNotFound = &Error{Code: "keyword_not_found", Status: http.StatusNotFound, Detail: "Keyword not found"}

	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = &Error{Code: "user_not_found", Status: http.StatusNotFound, Detail: "User not found"}

	// ErrUnauthorized is returned when the caller is not the owning author.
	ErrUnauthorized = &Error{Code: "unauthorized", Status: http.StatusForbidden, Detail: "You do not have permission to perform this action"}

	// ErrDuplicateKeyword signals an explicit duplicate. Normal keyword
	// creation avoids it through get-or-create.
	ErrDuplicateKeyword = &Error{Code: "duplicate_keyword", Status: http.StatusBadRequest, Detail: "Keyword already exists"}

	// ErrInvalidArticleStatus is returned for a status value out of range.
	ErrInvalidArticleStatus = &Error{Code: "invalid_article_status", Status: http.StatusBadRequest, Detail: "Invalid article status"}

	// ErrInvalidArticleType is returned for a type value out of range.
	ErrInvalidArticleType = &Error{Code: "invalid_article_type", Status: http.StatusBadRequest, Detail: "Invalid article type"}
)

// NewValidationError builds a field-level or business-rule violation.
func NewValidationError(detail string) *Error {
	if detail == "" {
		detail = "Validation error"
	}
	return &Error{Code: "validation_error", Status: http.StatusBadRequest, Detail: detail}
}

// NewBusinessError builds a generic catch-all business failure.
func NewBusinessError(detail string) *Error {
	if detail == "" {
		detail = "A business rule violation occurred"
	}
	return &Error{Code: "business_error", Status: http.StatusBadRequest, Detail: detail}
}
