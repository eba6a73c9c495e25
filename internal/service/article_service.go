package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/logger"
	"github.com/alucardavid/samplemed-blog/internal/repository"
)

// ArticleService encapsulates article mutation and read logic,
// including the ownership rule: only the owning author may update or
// delete an article.
type ArticleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	keywords KeywordServiceInterface
	cache    cache.Flusher
	now      func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	keywords KeywordServiceInterface,
	flusher cache.Flusher,
) *ArticleService {
	return &ArticleService{
		articles: articles,
		users:    users,
		keywords: keywords,
		cache:    flusher,
		now:      time.Now,
	}
}

// List returns a page of articles matching the filter, authors
// preloaded.
func (s *ArticleService) List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error) {
	return s.articles.List(ctx, filter, limit, offset)
}

// GetByID returns the article or ErrArticleNotFound.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

// GetByAuthor returns all articles owned by the given author, or
// ErrUserNotFound when the author id does not resolve.
func (s *ArticleService) GetByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.articles.ListByAuthor(ctx, authorID)
}

// Create builds an article owned by authorID. Keyword names are
// resolved through get-or-create, so duplicates and case variants
// collapse into one attachment each.
func (s *ArticleService) Create(ctx context.Context, input ArticleInput, authorID int64) (*domain.Article, error) {
	if !domain.IsValidArticleType(input.Type) {
		return nil, domain.ErrInvalidArticleType
	}
	if !domain.IsValidArticleStatus(input.Status) {
		return nil, domain.ErrInvalidArticleStatus
	}

	keywordIDs, err := s.resolveKeywords(ctx, input.Keywords)
	if err != nil {
		return nil, err
	}

	article := &domain.Article{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Content:  input.Content,
		Type:     input.Type,
		Status:   input.Status,
		AuthorID: authorID,
	}

	created, err := s.articles.Create(ctx, article, keywordIDs)
	if err != nil {
		return nil, err
	}

	s.cache.Flush()
	logger.InfoContext(ctx, "article created",
		slog.Int64("article_id", created.ID),
		slog.Int64("author_id", authorID))
	return created, nil
}

// Update applies the patch to the article. Fails with ErrUnauthorized
// when the caller is not the owning author; only fields present in the
// patch are replaced, and updated_at is refreshed.
func (s *ArticleService) Update(ctx context.Context, id int64, patch domain.ArticlePatch, callerID int64) (*domain.Article, error) {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != callerID {
		return nil, domain.ErrUnauthorized
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		article.Subtitle = *patch.Subtitle
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Type != nil {
		if !domain.IsValidArticleType(*patch.Type) {
			return nil, domain.ErrInvalidArticleType
		}
		article.Type = *patch.Type
	}
	if patch.Status != nil {
		if !domain.IsValidArticleStatus(*patch.Status) {
			return nil, domain.ErrInvalidArticleStatus
		}
		article.Status = *patch.Status
	}
	article.UpdatedAt = s.now()

	var keywordIDs []int64
	if patch.Keywords != nil {
		keywordIDs, err = s.resolveKeywords(ctx, patch.Keywords)
		if err != nil {
			return nil, err
		}
		if keywordIDs == nil {
			keywordIDs = []int64{}
		}
	}

	updated, err := s.articles.Update(ctx, article, keywordIDs)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrArticleNotFound
	}

	s.cache.Flush()
	return updated, nil
}

// Delete removes the article and its comments. Fails with
// ErrUnauthorized when the caller is not the owning author.
func (s *ArticleService) Delete(ctx context.Context, id int64, callerID int64) error {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article.AuthorID != callerID {
		return domain.ErrUnauthorized
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Flush()
	logger.InfoContext(ctx, "article deleted",
		slog.Int64("article_id", id),
		slog.Int64("author_id", callerID))
	return nil
}

// resolveKeywords maps names to keyword ids through get-or-create,
// dropping duplicates after normalization.
func (s *ArticleService) resolveKeywords(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		keyword, err := s.keywords.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[keyword.ID]; ok {
			continue
		}
		seen[keyword.ID] = struct{}{}
		ids = append(ids, keyword.ID)
	}
	return ids, nil
}
