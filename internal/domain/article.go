package domain

import "time"

// ArticleType describes the editorial state of an article.
type ArticleType int

const (
	ArticleTypeDraft     ArticleType = 0
	ArticleTypePublished ArticleType = 1
	ArticleTypeArchived  ArticleType = 2
)

// ArticleStatus describes the visibility of an article.
type ArticleStatus int

const (
	ArticleStatusPrivate ArticleStatus = 0
	ArticleStatusPublic  ArticleStatus = 1
)

// Article represents an article entity in the system.
type Article struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle"`
	Content   string        `json:"content"`
	Type      ArticleType   `json:"type"`
	Status    ArticleStatus `json:"status"`
	AuthorID  int64         `json:"-"`
	Author    *User         `json:"author,omitempty"`
	Keywords  []Keyword     `json:"keywords"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsValidArticleType checks if a type value is in range.
func IsValidArticleType(t ArticleType) bool {
	return t >= ArticleTypeDraft && t <= ArticleTypeArchived
}

// IsValidArticleStatus checks if a status value is in range.
func IsValidArticleStatus(s ArticleStatus) bool {
	return s == ArticleStatusPrivate || s == ArticleStatusPublic
}

// ArticleFilter restricts article list queries to matching rows.
// Zero values mean "not filtered".
type ArticleFilter struct {
	Title    string
	Subtitle string
	Type     *ArticleType
	Status   *ArticleStatus
	AuthorID int64
	Keyword  string
}

// ArticlePatch carries the fields of an article update. Nil fields are
// left untouched so partial updates only replace what the client sent.
type ArticlePatch struct {
	Title    *string
	Subtitle *string
	Content  *string
	Type     *ArticleType
	Status   *ArticleStatus
	Keywords []string
}
