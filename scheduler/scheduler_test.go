package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacatalog/database"
	"mediacatalog/models"
	"mediacatalog/services"
	"mediacatalog/storage"
)

func setupSweepFixture(t *testing.T) (services.AttachmentService, services.AttachmentRepository, *storage.MemoryStore) {
	t.Helper()
	require.NoError(t, database.Initialize("sqlite", ":memory:"))
	t.Cleanup(database.Close)

	db := services.NewSQLExecutor(database.DB)
	repo := services.NewAttachmentRepository(db)
	store := storage.NewMemoryStore()
	return services.NewAttachmentService(db, repo, store), repo, store
}

func createSweepTitle(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	var genreID string
	require.NoError(t, database.DB.QueryRow("SELECT id FROM movie_genres LIMIT 1").Scan(&genreID))

	db := services.NewSQLExecutor(database.DB)
	catalog := services.NewCatalogService(db, nil)
	title, err := catalog.CreateTitle(ctx, models.CreateTitleRequest{
		TitleName: "Alien", TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}})
	require.NoError(t, err)
	return title.ID
}

func TestSweepDeletesOnlyOrphans(t *testing.T) {
	attachments, repo, store := setupSweepFixture(t)
	ctx := context.Background()
	titleID := createSweepTitle(t)

	att, err := attachments.Attach(ctx, titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	require.NoError(t, err)

	// An object with no metadata row.
	_, err = store.Put(ctx, "posters/Orphan/20250101_000000.png", []byte("y"), "image/png")
	require.NoError(t, err)

	sweeper := NewSweeper(repo, store, time.Hour)
	deleted, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, _, ok := store.Get("posters/Orphan/20250101_000000.png")
	assert.False(t, ok)
	_, _, ok = store.Get(att.StorageKey)
	assert.True(t, ok)
}

func TestSweepEmptyStore(t *testing.T) {
	_, repo, store := setupSweepFixture(t)

	sweeper := NewSweeper(repo, store, time.Hour)
	deleted, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestSweepContinuesPastDeleteFailures(t *testing.T) {
	_, repo, store := setupSweepFixture(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "posters/A/x.png", []byte("a"), "image/png")
	require.NoError(t, err)
	store.DeleteErr = assert.AnError

	sweeper := NewSweeper(repo, store, time.Hour)
	deleted, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Contains(t, store.DeleteCalls(), "posters/A/x.png")
}
