package storage

import (
	"context"
	"testing"
	"time"

	"mediacatalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	result, err := store.Put(ctx, "posters/Alien/a.png", []byte("bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "memory://posters/Alien/a.png", result.URL)

	data, contentType, ok := store.Get("posters/Alien/a.png")
	require.True(t, ok)
	assert.Equal(t, []byte("bytes"), data)
	assert.Equal(t, "image/png", contentType)

	exists, err := store.Exists(ctx, "posters/Alien/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "posters/Alien/a.png"))
	exists, err = store.Exists(ctx, "posters/Alien/a.png")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, []string{"posters/Alien/a.png"}, store.DeleteCalls())
}

func TestMemoryStoreSignedURLMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.SignedURL(context.Background(), "nope", time.Hour)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}
