package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/mocks"
	"github.com/alucardavid/samplemed-blog/internal/service"
)

func TestKeywordService_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing keyword for a case variant", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		existing := &domain.Keyword{ID: 7, Name: "golang"}
		repo.On("GetByName", ctx, "golang").Return(existing, nil)

		svc := service.NewKeywordService(repo, flusher)
		keyword, err := svc.GetOrCreate(ctx, "  GoLang ")

		require.NoError(t, err)
		assert.Equal(t, int64(7), keyword.ID)
		assert.Equal(t, "golang", keyword.Name)
		assert.Zero(t, flusher.Flushes, "resolving an existing keyword is a read")
	})

	t.Run("creates keyword when none exists and flushes cached lists", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		repo.On("GetByName", ctx, "testing").Return(nil, nil)
		repo.On("Insert", ctx, "testing").Return(&domain.Keyword{ID: 3, Name: "testing"}, nil)

		svc := service.NewKeywordService(repo, flusher)
		keyword, err := svc.GetOrCreate(ctx, "Testing")

		require.NoError(t, err)
		assert.Equal(t, int64(3), keyword.ID)
		assert.Equal(t, 1, flusher.Flushes)
	})

	t.Run("re-reads the winning row after losing an insert race", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		winner := &domain.Keyword{ID: 9, Name: "race"}
		repo.On("GetByName", ctx, "race").Return(nil, nil).Once()
		repo.On("Insert", ctx, "race").Return(nil, nil).Once()
		repo.On("GetByName", ctx, "race").Return(winner, nil).Once()

		svc := service.NewKeywordService(repo, flusher)
		keyword, err := svc.GetOrCreate(ctx, "race")

		require.NoError(t, err)
		assert.Equal(t, int64(9), keyword.ID)
		assert.Zero(t, flusher.Flushes, "the racing winner already flushed")
	})

	t.Run("rejects a name that normalizes to empty", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)

		svc := service.NewKeywordService(repo, &mocks.FlushRecorder{})
		_, err := svc.GetOrCreate(ctx, "   ")

		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "validation_error", domainErr.Code)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		repo.On("GetByName", ctx, "boom").Return(nil, errors.New("connection refused"))

		svc := service.NewKeywordService(repo, &mocks.FlushRecorder{})
		_, err := svc.GetOrCreate(ctx, "boom")

		assert.Error(t, err)
	})
}

func TestKeywordService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("renames, normalizes, and flushes cached lists", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Keyword{ID: 1, Name: "old"}, nil)
		repo.On("GetByName", ctx, "new name").Return(nil, nil)
		repo.On("Update", ctx, &domain.Keyword{ID: 1, Name: "new name"}).
			Return(&domain.Keyword{ID: 1, Name: "new name"}, nil)

		svc := service.NewKeywordService(repo, flusher)
		keyword, err := svc.Update(ctx, 1, "  New Name ")

		require.NoError(t, err)
		assert.Equal(t, "new name", keyword.Name)
		assert.Equal(t, 1, flusher.Flushes)
	})

	t.Run("rejects rename onto an existing keyword", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Keyword{ID: 1, Name: "old"}, nil)
		repo.On("GetByName", ctx, "taken").Return(&domain.Keyword{ID: 2, Name: "taken"}, nil)

		svc := service.NewKeywordService(repo, flusher)
		_, err := svc.Update(ctx, 1, "Taken")

		assert.ErrorIs(t, err, domain.ErrDuplicateKeyword)
		assert.Zero(t, flusher.Flushes)
	})

	t.Run("allows renaming onto its own name", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Keyword{ID: 1, Name: "same"}, nil)
		repo.On("GetByName", ctx, "same").Return(&domain.Keyword{ID: 1, Name: "same"}, nil)
		repo.On("Update", ctx, &domain.Keyword{ID: 1, Name: "same"}).
			Return(&domain.Keyword{ID: 1, Name: "same"}, nil)

		svc := service.NewKeywordService(repo, &mocks.FlushRecorder{})
		keyword, err := svc.Update(ctx, 1, "SAME")

		require.NoError(t, err)
		assert.Equal(t, int64(1), keyword.ID)
	})
}

func TestKeywordService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for a missing id", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		repo.On("GetByID", ctx, int64(42)).Return(nil, nil)

		svc := service.NewKeywordService(repo, &mocks.FlushRecorder{})
		_, err := svc.GetByID(ctx, 42)

		assert.ErrorIs(t, err, domain.ErrKeywordNotFound)
	})
}

func TestKeywordService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing keyword and flushes cached lists", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Keyword{ID: 5, Name: "gone"}, nil)
		repo.On("Delete", ctx, int64(5)).Return(nil)

		svc := service.NewKeywordService(repo, flusher)
		require.NoError(t, svc.Delete(ctx, 5))
		assert.Equal(t, 1, flusher.Flushes)
	})

	t.Run("returns not found for a missing id", func(t *testing.T) {
		repo := mocks.NewMockKeywordRepository(t)
		flusher := &mocks.FlushRecorder{}
		repo.On("GetByID", ctx, int64(5)).Return(nil, nil)

		svc := service.NewKeywordService(repo, flusher)
		assert.ErrorIs(t, svc.Delete(ctx, 5), domain.ErrKeywordNotFound)
		assert.Zero(t, flusher.Flushes)
	})
}
