package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacatalog/database"
	"mediacatalog/models"
	"mediacatalog/storage"
)

func setupTestDB(t *testing.T) SQLExecutor {
	t.Helper()
	require.NoError(t, database.Initialize("sqlite", ":memory:"))
	t.Cleanup(database.Close)
	return NewSQLExecutor(database.DB)
}

func anyGenreID(t *testing.T, db SQLExecutor) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM movie_genres ORDER BY genre_name LIMIT 1").Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestTitle(t *testing.T, db SQLExecutor, name string) string {
	t.Helper()
	catalog := NewCatalogService(db, nil)
	title, err := catalog.CreateTitle(context.Background(), models.CreateTitleRequest{
		TitleName: name,
		TitleType: models.TitleTypeMovie,
		GenreIDs:  []string{anyGenreID(t, db)},
	})
	require.NoError(t, err)
	return title.ID
}

type attachmentFixture struct {
	db      SQLExecutor
	store   *storage.MemoryStore
	service *attachmentService
	titleID string
}

func setupAttachmentFixture(t *testing.T) *attachmentFixture {
	t.Helper()
	db := setupTestDB(t)
	store := storage.NewMemoryStore()
	service := NewAttachmentService(db, NewAttachmentRepository(db), store).(*attachmentService)

	clock := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	service.now = func() time.Time { return clock }

	return &attachmentFixture{
		db:      db,
		store:   store,
		service: service,
		titleID: createTestTitle(t, db, "Alien"),
	}
}

func (f *attachmentFixture) advanceClock(d time.Duration) {
	current := f.service.now()
	f.service.now = func() time.Time { return current.Add(d) }
}

func TestAttachPosterStoresBlobAndMetadata(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	att, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"cover.png", "image/png", []byte("png-bytes"), "admin")
	require.NoError(t, err)

	assert.Equal(t, "posters/Alien/20250314_092653.png", att.StorageKey)
	assert.Equal(t, int64(9), att.SizeBytes)
	assert.Equal(t, "image/png", att.ContentType)
	assert.NotEmpty(t, att.ID)
	assert.NotEmpty(t, att.UploadedAt)

	data, contentType, ok := f.store.Get(att.StorageKey)
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)

	poster, err := f.service.GetPoster(ctx, f.titleID)
	require.NoError(t, err)
	assert.Equal(t, att.ID, poster.ID)
}

func TestAttachPosterReplacesPreviousPoster(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	first, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"old.png", "image/png", []byte("old"), "")
	require.NoError(t, err)

	f.advanceClock(time.Minute)
	second, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"new.jpg", "image/jpeg", []byte("new"), "")
	require.NoError(t, err)

	// Old blob is gone, new one is present.
	_, _, ok := f.store.Get(first.StorageKey)
	assert.False(t, ok)
	_, _, ok = f.store.Get(second.StorageKey)
	assert.True(t, ok)
	assert.Contains(t, f.store.DeleteCalls(), first.StorageKey)

	// Exactly one poster row remains.
	posters, err := f.service.ListByKind(ctx, f.titleID, models.KindPoster)
	require.NoError(t, err)
	require.Len(t, posters, 1)
	assert.Equal(t, second.ID, posters[0].ID)
}

func TestAttachPosterReplaceSurvivesBlobDeleteFailure(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	first, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"old.png", "image/png", []byte("old"), "")
	require.NoError(t, err)

	f.store.DeleteErr = assert.AnError
	f.advanceClock(time.Minute)
	_, err = f.service.Attach(ctx, f.titleID, models.KindPoster,
		"new.png", "image/png", []byte("new"), "")
	require.NoError(t, err)

	// The replaced poster's metadata is gone even though its blob lingered.
	_, err = f.service.DownloadURL(ctx, first.ID, time.Hour)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestAttachRejectedUploadHasNoSideEffects(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	_, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"sheet.pdf", "application/pdf", []byte("pdf"), "")
	assert.True(t, models.IsKind(err, models.ErrInvalidFileType))

	_, err = f.service.Attach(ctx, f.titleID, models.KindPoster,
		"empty.png", "image/png", nil, "")
	assert.True(t, models.IsKind(err, models.ErrInvalidFile))

	keys, err := f.store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	attachments, err := f.service.ListByTitle(ctx, f.titleID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestAttachUnknownTitle(t *testing.T) {
	f := setupAttachmentFixture(t)

	_, err := f.service.Attach(context.Background(), "title-missing", models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestAttachUploadFailureWritesNoMetadata(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	f.store.PutErr = assert.AnError
	_, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	assert.True(t, models.IsKind(err, models.ErrStorage))

	attachments, err := f.service.ListByTitle(ctx, f.titleID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestAttachTechnicalSheetsAccumulate(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	first, err := f.service.Attach(ctx, f.titleID, models.KindTechnicalSheet,
		"a.pdf", "application/pdf", []byte("a"), "")
	require.NoError(t, err)

	f.advanceClock(time.Minute)
	second, err := f.service.Attach(ctx, f.titleID, models.KindTechnicalSheet,
		"b.pdf", "application/pdf", []byte("b"), "")
	require.NoError(t, err)

	sheets, err := f.service.ListByKind(ctx, f.titleID, models.KindTechnicalSheet)
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	// Newest first.
	assert.Equal(t, second.ID, sheets[0].ID)
	assert.Equal(t, first.ID, sheets[1].ID)
}

func TestRemoveDeletesBlobAndMetadata(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	att, err := f.service.Attach(ctx, f.titleID, models.KindTechnicalSheet,
		"a.pdf", "application/pdf", []byte("a"), "")
	require.NoError(t, err)

	require.NoError(t, f.service.Remove(ctx, att.ID))

	_, _, ok := f.store.Get(att.StorageKey)
	assert.False(t, ok)

	// Removing again reports not found.
	err = f.service.Remove(ctx, att.ID)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestRemoveKeepsGoingWhenBlobDeleteFails(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	att, err := f.service.Attach(ctx, f.titleID, models.KindTechnicalSheet,
		"a.pdf", "application/pdf", []byte("a"), "")
	require.NoError(t, err)

	f.store.DeleteErr = assert.AnError
	require.NoError(t, f.service.Remove(ctx, att.ID))

	attachments, err := f.service.ListByTitle(ctx, f.titleID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestDownloadURL(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	att, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	require.NoError(t, err)

	url, err := f.service.DownloadURL(ctx, att.ID, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, att.StorageKey)

	_, err = f.service.DownloadURL(ctx, "att-missing", time.Hour)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestRemoveAllForTitle(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	_, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	require.NoError(t, err)
	f.advanceClock(time.Minute)
	_, err = f.service.Attach(ctx, f.titleID, models.KindTechnicalSheet,
		"s.pdf", "application/pdf", []byte("y"), "")
	require.NoError(t, err)

	require.NoError(t, f.service.RemoveAllForTitle(ctx, f.titleID))

	keys, err := f.store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	attachments, err := f.service.ListByTitle(ctx, f.titleID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestRemoveAllForTitleToleratesBlobFailures(t *testing.T) {
	f := setupAttachmentFixture(t)
	ctx := context.Background()

	_, err := f.service.Attach(ctx, f.titleID, models.KindPoster,
		"p.png", "image/png", []byte("x"), "")
	require.NoError(t, err)

	f.store.DeleteErr = assert.AnError
	require.NoError(t, f.service.RemoveAllForTitle(ctx, f.titleID))

	attachments, err := f.service.ListByTitle(ctx, f.titleID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}
