// Package mocks provides testify mocks for the repository and service
// interfaces. Constructors register expectation assertions on test
// cleanup.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User, afterCreate func(*domain.User) error) (*domain.User, error) {
	args := m.Called(ctx, user, afterCreate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountActivity(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockArticleRepository mocks repository.ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func NewMockArticleRepository(t *testing.T) *MockArticleRepository {
	m := &MockArticleRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArticleRepository) List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var articles []domain.Article
	if args.Get(0) != nil {
		articles = args.Get(0).([]domain.Article)
	}
	return articles, args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error) {
	args := m.Called(ctx, article, keywordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error) {
	args := m.Called(ctx, article, keywordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKeywordRepository mocks repository.KeywordRepository.
type MockKeywordRepository struct {
	mock.Mock
}

func NewMockKeywordRepository(t *testing.T) *MockKeywordRepository {
	m := &MockKeywordRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockKeywordRepository) GetByID(ctx context.Context, id int64) (*domain.Keyword, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) GetByName(ctx context.Context, name string) (*domain.Keyword, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) Insert(ctx context.Context, name string) (*domain.Keyword, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error) {
	args := m.Called(ctx, name, limit, offset)
	var keywords []domain.Keyword
	if args.Get(0) != nil {
		keywords = args.Get(0).([]domain.Keyword)
	}
	return keywords, args.Get(1).(int64), args.Error(2)
}

func (m *MockKeywordRepository) Update(ctx context.Context, keyword *domain.Keyword) (*domain.Keyword, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository mocks repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func NewMockCommentRepository(t *testing.T) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommentRepository) List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
