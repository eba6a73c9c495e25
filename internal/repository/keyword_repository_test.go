package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/repository"
)

func TestPostgresKeywordRepository(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)
	ctx := context.Background()
	repo := repository.NewPostgresKeywordRepository(testDB.Pool)

	t.Run("insert and read back", func(t *testing.T) {
		testDB.TruncateTables(t, "keywords")

		created, err := repo.Insert(ctx, "golang")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotZero(t, created.ID)

		byName, err := repo.GetByName(ctx, "golang")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("conflicting insert yields nil without error", func(t *testing.T) {
		testDB.TruncateTables(t, "keywords")

		first, err := repo.Insert(ctx, "golang")
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := repo.Insert(ctx, "golang")
		require.NoError(t, err)
		assert.Nil(t, second)

		// Exactly one row exists.
		_, count, err := repo.List(ctx, "golang", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("list filters by exact name", func(t *testing.T) {
		testDB.TruncateTables(t, "keywords")
		_, err := repo.Insert(ctx, "alpha")
		require.NoError(t, err)
		_, err = repo.Insert(ctx, "beta")
		require.NoError(t, err)

		keywords, count, err := repo.List(ctx, "alpha", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		require.Len(t, keywords, 1)
		assert.Equal(t, "alpha", keywords[0].Name)

		_, count, err = repo.List(ctx, "", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("update renames", func(t *testing.T) {
		testDB.TruncateTables(t, "keywords")
		created, err := repo.Insert(ctx, "before")
		require.NoError(t, err)

		created.Name = "after"
		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Name)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		testDB.TruncateTables(t, "keywords")
		created, err := repo.Insert(ctx, "doomed")
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		gone, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
