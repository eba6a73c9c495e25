package domain

import (
	"strings"
	"time"
)

// Keyword is a tag shared across articles. Names are unique after
// normalization, so two articles tagged "Cats" and "cats" reference the
// same row.
type Keyword struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeKeywordName trims whitespace and lower-cases a keyword name.
// Every name entering the system goes through this before any lookup or
// insert.
func NormalizeKeywordName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
