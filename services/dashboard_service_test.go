package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacatalog/models"
	"mediacatalog/storage"
)

func TestDashboardStatsEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	dashboard := NewDashboardService(db, storage.NewMemoryStore())

	stats, err := dashboard.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalTitles)
	assert.Equal(t, int64(5), stats.TotalGenres)
	assert.Equal(t, "0%", stats.PosterCoverage)
	assert.Equal(t, "0.0", stats.AverageGenresPerTitle)
	assert.Equal(t, "0 B", stats.TotalStorageUsed)
	assert.Empty(t, stats.MostRecentTitle)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()
	attachments := NewAttachmentService(db, NewAttachmentRepository(db), store)
	catalog := NewCatalogService(db, attachments)
	dashboard := NewDashboardService(db, store)
	ctx := context.Background()

	genreID := anyGenreID(t, db)
	movie, err := catalog.CreateTitle(ctx, models.CreateTitleRequest{
		TitleName: "Alien", TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}})
	require.NoError(t, err)
	_, err = catalog.CreateTitle(ctx, models.CreateTitleRequest{
		TitleName: "The Expanse", TitleType: models.TitleTypeSeries, GenreIDs: []string{genreID}})
	require.NoError(t, err)

	_, err = attachments.Attach(ctx, movie.ID, models.KindPoster,
		"p.png", "image/png", make([]byte, 2048), "")
	require.NoError(t, err)
	_, err = attachments.Attach(ctx, movie.ID, models.KindTechnicalSheet,
		"s.pdf", "application/pdf", make([]byte, 1024), "")
	require.NoError(t, err)

	stats, err := dashboard.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalTitles)
	assert.Equal(t, int64(1), stats.MovieCount)
	assert.Equal(t, int64(1), stats.SeriesCount)
	assert.Equal(t, int64(1), stats.TitlesWithPoster)
	assert.Equal(t, int64(2), stats.TitlesLastMonth)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, int64(1), stats.PosterCount)
	assert.Equal(t, int64(1), stats.TechnicalSheetCount)
	assert.Equal(t, int64(2), stats.FilesInBlobStore)
	assert.Equal(t, int64(3072), stats.TotalStorageBytes)
	assert.Equal(t, "3.0 KB", stats.TotalStorageUsed)
	assert.Equal(t, "50%", stats.PosterCoverage)
	assert.Equal(t, "1.0", stats.AverageGenresPerTitle)
	assert.NotEmpty(t, stats.MostRecentTitle)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "2.5 MB", formatBytes(2621440))
	assert.Equal(t, "1.0 GB", formatBytes(1073741824))
}
