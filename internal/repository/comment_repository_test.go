package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/repository"
)

func TestPostgresCommentRepository(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)
	ctx := context.Background()
	repo := repository.NewPostgresCommentRepository(testDB.Pool)
	articleRepo := repository.NewPostgresArticleRepository(testDB.Pool)

	setup := func(t *testing.T) (author *domain.User, article *domain.Article) {
		testDB.TruncateTables(t, "users", "articles", "comments")
		author = createTestUser(t, testDB.Pool, "author")
		var err error
		article, err = articleRepo.Create(ctx, &domain.Article{
			Title:    "t",
			Subtitle: "s",
			Content:  "c",
			AuthorID: author.ID,
		}, nil)
		require.NoError(t, err)
		return author, article
	}

	t.Run("create loads the author", func(t *testing.T) {
		author, article := setup(t)

		created, err := repo.Create(ctx, &domain.Comment{
			ArticleID: article.ID,
			AuthorID:  author.ID,
			Content:   "hello",
		})
		require.NoError(t, err)
		require.NotNil(t, created.Author)
		assert.Equal(t, "author", created.Author.Username)
	})

	t.Run("list filters by article and content fragment", func(t *testing.T) {
		author, article := setup(t)

		for _, content := range []string{"great article", "thanks for sharing", "Great stuff"} {
			_, err := repo.Create(ctx, &domain.Comment{
				ArticleID: article.ID,
				AuthorID:  author.ID,
				Content:   content,
			})
			require.NoError(t, err)
		}

		byArticle, count, err := repo.List(ctx, domain.CommentFilter{ArticleID: article.ID}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.Len(t, byArticle, 3)

		// Fragment match is case-insensitive.
		byContent, count, err := repo.List(ctx, domain.CommentFilter{Content: "great"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.Len(t, byContent, 2)
	})

	t.Run("update of a missing comment yields nil", func(t *testing.T) {
		setup(t)

		updated, err := repo.Update(ctx, &domain.Comment{ID: 999999, Content: "x"})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		author, article := setup(t)

		created, err := repo.Create(ctx, &domain.Comment{
			ArticleID: article.ID,
			AuthorID:  author.ID,
			Content:   "doomed",
		})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		gone, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
