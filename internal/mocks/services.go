package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/service"
)

// MockArticleService mocks service.ArticleServiceInterface.
type MockArticleService struct {
	mock.Mock
}

func NewMockArticleService(t *testing.T) *MockArticleService {
	m := &MockArticleService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArticleService) List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var articles []domain.Article
	if args.Get(0) != nil {
		articles = args.Get(0).([]domain.Article)
	}
	return articles, args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) GetByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, input service.ArticleInput, authorID int64) (*domain.Article, error) {
	args := m.Called(ctx, input, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, id int64, patch domain.ArticlePatch, callerID int64) (*domain.Article, error) {
	args := m.Called(ctx, id, patch, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id int64, callerID int64) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

// MockKeywordService mocks service.KeywordServiceInterface.
type MockKeywordService struct {
	mock.Mock
}

func NewMockKeywordService(t *testing.T) *MockKeywordService {
	m := &MockKeywordService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockKeywordService) GetOrCreate(ctx context.Context, name string) (*domain.Keyword, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordService) List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error) {
	args := m.Called(ctx, name, limit, offset)
	var keywords []domain.Keyword
	if args.Get(0) != nil {
		keywords = args.Get(0).([]domain.Keyword)
	}
	return keywords, args.Get(1).(int64), args.Error(2)
}

func (m *MockKeywordService) GetByID(ctx context.Context, id int64) (*domain.Keyword, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordService) Update(ctx context.Context, id int64, name string) (*domain.Keyword, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentService mocks service.CommentServiceInterface.
type MockCommentService struct {
	mock.Mock
}

func NewMockCommentService(t *testing.T) *MockCommentService {
	m := &MockCommentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommentService) List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, articleID int64, content string, authorID int64) (*domain.Comment, error) {
	args := m.Called(ctx, articleID, content, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserService mocks service.UserServiceInterface.
type MockUserService struct {
	mock.Mock
}

func NewMockUserService(t *testing.T) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserService) Register(ctx context.Context, input service.RegisterInput) (*domain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenIssuer mocks service.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func NewMockTokenIssuer(t *testing.T) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenIssuer) Issue(user *domain.User) (*domain.TokenPair, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

// FlushRecorder is a cache.Flusher that counts flushes.
type FlushRecorder struct {
	Flushes int
}

func (f *FlushRecorder) Flush() {
	f.Flushes++
}
