package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/mocks"
	"github.com/alucardavid/samplemed-blog/internal/service"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates comment authored by the caller", func(t *testing.T) {
		commentRepo := mocks.NewMockCommentRepository(t)
		articleRepo := mocks.NewMockArticleRepository(t)
		flusher := &mocks.FlushRecorder{}

		articleRepo.On("GetByID", ctx, int64(10)).
			Return(&domain.Article{ID: 10, AuthorID: 5}, nil)
		commentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ArticleID == 10 && c.AuthorID == 8 && c.Content == "nice read"
		})).Return(&domain.Comment{ID: 1, ArticleID: 10, AuthorID: 8, Content: "nice read"}, nil)

		svc := service.NewCommentService(commentRepo, articleRepo, flusher)
		created, err := svc.Create(ctx, 10, "nice read", 8)

		require.NoError(t, err)
		assert.Equal(t, int64(8), created.AuthorID)
		assert.Equal(t, 1, flusher.Flushes)
	})

	t.Run("rejects a comment on a missing article", func(t *testing.T) {
		commentRepo := mocks.NewMockCommentRepository(t)
		articleRepo := mocks.NewMockArticleRepository(t)
		flusher := &mocks.FlushRecorder{}

		articleRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

		svc := service.NewCommentService(commentRepo, articleRepo, flusher)
		_, err := svc.Create(ctx, 404, "into the void", 8)

		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
		assert.Zero(t, flusher.Flushes)
	})
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces content and flushes", func(t *testing.T) {
		commentRepo := mocks.NewMockCommentRepository(t)
		articleRepo := mocks.NewMockArticleRepository(t)
		flusher := &mocks.FlushRecorder{}

		commentRepo.On("GetByID", ctx, int64(1)).
			Return(&domain.Comment{ID: 1, Content: "old"}, nil)
		commentRepo.On("Update", ctx, &domain.Comment{ID: 1, Content: "edited"}).
			Return(&domain.Comment{ID: 1, Content: "edited"}, nil)

		svc := service.NewCommentService(commentRepo, articleRepo, flusher)
		updated, err := svc.Update(ctx, 1, "edited")

		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		assert.Equal(t, 1, flusher.Flushes)
	})

	t.Run("returns not found for a missing comment", func(t *testing.T) {
		commentRepo := mocks.NewMockCommentRepository(t)
		articleRepo := mocks.NewMockArticleRepository(t)
		flusher := &mocks.FlushRecorder{}

		commentRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

		svc := service.NewCommentService(commentRepo, articleRepo, flusher)
		_, err := svc.Update(ctx, 404, "edited")

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and flushes", func(t *testing.T) {
		commentRepo := mocks.NewMockCommentRepository(t)
		articleRepo := mocks.NewMockArticleRepository(t)
		flusher := &mocks.FlushRecorder{}

		commentRepo.On("GetByID", ctx, int64(1)).
			Return(&domain.Comment{ID: 1}, nil)
		commentRepo.On("Delete", ctx, int64(1)).Return(nil)

		svc := service.NewCommentService(commentRepo, articleRepo, flusher)
		require.NoError(t, svc.Delete(ctx, 1))
		assert.Equal(t, 1, flusher.Flushes)
	})
}
