package domain

import "time"

// Comment represents a comment on an article. The author is always the
// authenticated caller, never client-supplied.
type Comment struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	AuthorID  int64     `json:"-"`
	Author    *User     `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentFilter restricts comment list queries. Zero values mean "not
// filtered". Content matches as a substring.
type CommentFilter struct {
	ArticleID int64
	AuthorID  int64
	Content   string
}
