package service

import (
	"context"
	"log/slog"

	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/logger"
	"github.com/alucardavid/samplemed-blog/internal/repository"
)

// CommentService encapsulates comment operations. Update and delete are
// open to any authenticated caller, not just the comment's author; this
// mirrors the upstream behavior and is tracked as a known gap rather
// than silently tightened.
type CommentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	cache    cache.Flusher
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	flusher cache.Flusher,
) *CommentService {
	return &CommentService{comments: comments, articles: articles, cache: flusher}
}

// List returns a page of comments, newest first.
func (s *CommentService) List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error) {
	return s.comments.List(ctx, filter, limit, offset)
}

// GetByID returns the comment or ErrCommentNotFound.
func (s *CommentService) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

// Create adds a comment on the article, authored by the authenticated
// caller.
func (s *CommentService) Create(ctx context.Context, articleID int64, content string, authorID int64) (*domain.Comment, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrArticleNotFound
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Flush()
	logger.InfoContext(ctx, "comment created",
		slog.Int64("comment_id", created.ID),
		slog.Int64("article_id", articleID))
	return created, nil
}

// Update replaces the comment content.
func (s *CommentService) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.comments.Update(ctx, &domain.Comment{ID: id, Content: content})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrCommentNotFound
	}

	s.cache.Flush()
	return updated, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
