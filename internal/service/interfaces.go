package service

import (
	"context"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// TokenIssuer issues a token pair bound to an identity. Satisfied by
// auth.TokenService; mocked in tests.
type TokenIssuer interface {
	Issue(user *domain.User) (*domain.TokenPair, error)
}

// ArticleInput is the payload for article creation. Keywords carries raw
// names; the service resolves them through keyword get-or-create.
type ArticleInput struct {
	Title    string
	Subtitle string
	Content  string
	Type     domain.ArticleType
	Status   domain.ArticleStatus
	Keywords []string
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ArticleServiceInterface defines article operations.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	GetByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error)
	Create(ctx context.Context, input ArticleInput, authorID int64) (*domain.Article, error)
	Update(ctx context.Context, id int64, patch domain.ArticlePatch, callerID int64) (*domain.Article, error)
	Delete(ctx context.Context, id int64, callerID int64) error
}

// KeywordServiceInterface defines keyword operations.
type KeywordServiceInterface interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Keyword, error)
	List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Keyword, error)
	Update(ctx context.Context, id int64, name string) (*domain.Keyword, error)
	Delete(ctx context.Context, id int64) error
}

// CommentServiceInterface defines comment operations. The author of a
// new comment is always the authenticated caller.
type CommentServiceInterface interface {
	List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, articleID int64, content string, authorID int64) (*domain.Comment, error)
	Update(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// UserServiceInterface defines user operations.
type UserServiceInterface interface {
	Register(ctx context.Context, input RegisterInput) (*domain.TokenPair, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
