package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacatalog/models"
	"mediacatalog/storage"
)

func intPtr(v int) *int { return &v }

func TestCreateTitleAndGetBack(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db, nil)
	genreID := anyGenreID(t, db)

	created, err := catalog.CreateTitle(context.Background(), models.CreateTitleRequest{
		TitleName:   "  Blade Runner  ",
		TitleType:   models.TitleTypeMovie,
		ReleaseYear: intPtr(1982),
		Synopsis:    "A blade runner must pursue replicants.",
		GenreIDs:    []string{genreID, genreID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blade Runner", created.TitleName)
	assert.Equal(t, models.TitleTypeMovie, created.TitleType)
	require.NotNil(t, created.ReleaseYear)
	assert.Equal(t, 1982, *created.ReleaseYear)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, genreID, created.Genres[0].ID)
	assert.NotEmpty(t, created.CreatedAt)

	loaded, err := catalog.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, loaded)
}

func TestCreateTitleValidation(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db, nil)
	genreID := anyGenreID(t, db)

	badRating := 11.0
	cases := []struct {
		name string
		req  models.CreateTitleRequest
	}{
		{"empty name", models.CreateTitleRequest{
			TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}}},
		{"name too short", models.CreateTitleRequest{
			TitleName: "A", TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}}},
		{"bad type", models.CreateTitleRequest{
			TitleName: "Dune", TitleType: "DOCUMENTARY", GenreIDs: []string{genreID}}},
		{"year before 1900", models.CreateTitleRequest{
			TitleName: "Dune", TitleType: models.TitleTypeMovie,
			ReleaseYear: intPtr(1850), GenreIDs: []string{genreID}}},
		{"future year", models.CreateTitleRequest{
			TitleName: "Dune", TitleType: models.TitleTypeMovie,
			ReleaseYear: intPtr(2999), GenreIDs: []string{genreID}}},
		{"rating out of range", models.CreateTitleRequest{
			TitleName: "Dune", TitleType: models.TitleTypeMovie,
			AverageRating: &badRating, GenreIDs: []string{genreID}}},
		{"no genres", models.CreateTitleRequest{
			TitleName: "Dune", TitleType: models.TitleTypeMovie}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.CreateTitle(context.Background(), tc.req)
			assert.True(t, models.IsKind(err, models.ErrInvalidTitle))
		})
	}

	// Unknown genre fails after validation, inside the transaction.
	_, err := catalog.CreateTitle(context.Background(), models.CreateTitleRequest{
		TitleName: "Dune", TitleType: models.TitleTypeMovie, GenreIDs: []string{"genre-missing"}})
	assert.True(t, models.IsKind(err, models.ErrInvalidTitle))

	titles, err := catalog.ListTitles(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestListTitlesSearchAndFilter(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db, nil)
	genreID := anyGenreID(t, db)
	ctx := context.Background()

	for _, tc := range []struct {
		name      string
		titleType models.TitleType
	}{
		{"Alien", models.TitleTypeMovie},
		{"Aliens", models.TitleTypeMovie},
		{"The Expanse", models.TitleTypeSeries},
	} {
		_, err := catalog.CreateTitle(ctx, models.CreateTitleRequest{
			TitleName: tc.name, TitleType: tc.titleType, GenreIDs: []string{genreID}})
		require.NoError(t, err)
	}

	all, err := catalog.ListTitles(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := catalog.ListTitles(ctx, "alien", "")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	series, err := catalog.ListTitles(ctx, "", models.TitleTypeSeries)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "The Expanse", series[0].TitleName)

	_, err = catalog.ListTitles(ctx, "", "BOGUS")
	assert.True(t, models.IsKind(err, models.ErrInvalidTitle))
}

func TestUpdateTitle(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db, nil)
	genres := NewGenreService(db)
	ctx := context.Background()

	genreID := anyGenreID(t, db)
	other, err := genres.CreateGenre(ctx, "Thriller")
	require.NoError(t, err)

	created, err := catalog.CreateTitle(ctx, models.CreateTitleRequest{
		TitleName: "Alien", TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}})
	require.NoError(t, err)

	updated, err := catalog.UpdateTitle(ctx, created.ID, models.UpdateTitleRequest{
		TitleName:   "Alien (Director's Cut)",
		TitleType:   models.TitleTypeMovie,
		ReleaseYear: intPtr(1979),
		GenreIDs:    []string{other.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alien (Director's Cut)", updated.TitleName)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "Thriller", updated.Genres[0].GenreName)

	_, err = catalog.UpdateTitle(ctx, "title-missing", models.UpdateTitleRequest{
		TitleName: "Dune", TitleType: models.TitleTypeMovie, GenreIDs: []string{genreID}})
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestDeleteTitleCleansUpAttachments(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()
	attachments := NewAttachmentService(db, NewAttachmentRepository(db), store)
	catalog := NewCatalogService(db, attachments)
	ctx := context.Background()

	titleID := createTestTitle(t, db, "Alien")
	att, err := attachments.Attach(ctx, titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteTitle(ctx, titleID))

	_, err = catalog.GetTitle(ctx, titleID)
	assert.True(t, models.IsKind(err, models.ErrNotFound))

	_, _, ok := store.Get(att.StorageKey)
	assert.False(t, ok)

	// Deleting a missing title reports not found.
	err = catalog.DeleteTitle(ctx, titleID)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}
