package cli

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/services"
)

func TestSeed(t *testing.T) {
	dbPath := "./test_seed.db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer func() {
		db.Close()
		os.Remove(dbPath)
	}()

	ctx := context.Background()
	cat := services.NewCatalog(db.DB, nil)

	stats, err := seed(ctx, cat, false)
	require.NoError(t, err)
	assert.Equal(t, len(seedAuthors), stats.authors)
	assert.Equal(t, len(seedGenres), stats.genres)
	assert.Equal(t, len(seedBooks), stats.books)

	t.Run("books reference their author and genres", func(t *testing.T) {
		books, err := cat.Books.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, len(seedBooks))

		for _, b := range books {
			if b.Title == "Test Book 1" {
				assert.Equal(t, "Jones, Jim", b.Author.Name())
				assert.Len(t, b.Genres, 2)
			}
		}
	})

	t.Run("seeding again reuses genres", func(t *testing.T) {
		stats, err := seed(ctx, cat, false)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.genres)
		assert.Equal(t, len(seedGenres), stats.existingGenres)

		counts, err := db.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(seedGenres)), counts.Genres)
		assert.Equal(t, int64(2*len(seedAuthors)), counts.Authors)
	})

	t.Run("authors with books cannot be deleted", func(t *testing.T) {
		res, err := cat.Authors.Delete(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "blocked", res.Outcome.String())
	})
}

func TestSeedCommand_ParseFlags(t *testing.T) {
	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", "/tmp/catalog.db", "-force"}))

	assert.Equal(t, "/tmp/catalog.db", cmd.DatabasePath)
	assert.True(t, cmd.Force)
	assert.False(t, cmd.Verbose)
}
