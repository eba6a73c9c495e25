package repository

import (
	"context"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts the user inside a transaction. When afterCreate is
	// non-nil it runs before commit with the persisted row; an error
	// rolls the whole insert back, so no partial identity row survives.
	Create(ctx context.Context, user *domain.User, afterCreate func(*domain.User) error) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// CountActivity returns the number of articles and comments the user owns.
	CountActivity(ctx context.Context, userID int64) (articles, comments int64, err error)
}

// ArticleRepository defines methods for article data access. Reads
// preload the author relation; GetByID and Create also load keywords.
type ArticleRepository interface {
	List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error)
	// Create inserts the article and attaches keywordIDs in one transaction.
	Create(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error)
	// Update persists the article fields; keywordIDs nil leaves the
	// keyword set untouched, non-nil replaces it.
	Update(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

// KeywordRepository defines methods for keyword data access.
type KeywordRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Keyword, error)
	GetByName(ctx context.Context, name string) (*domain.Keyword, error)
	// Insert creates a keyword with the given (already normalized) name.
	// On a unique conflict it returns (nil, nil) so the caller can
	// re-read the winning row.
	Insert(ctx context.Context, name string) (*domain.Keyword, error)
	List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error)
	Update(ctx context.Context, keyword *domain.Keyword) (*domain.Keyword, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines methods for comment data access. Lists are
// ordered by creation time descending with the author preloaded.
type CommentRepository interface {
	List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
