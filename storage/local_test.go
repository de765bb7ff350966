package storage

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"mediacatalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store := NewLocalStore(t.TempDir(), "http://localhost:8080", "test-secret")
	require.NoError(t, store.EnsureContainer(context.Background()))
	return store
}

func TestLocalStorePutAndOpen(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	result, err := store.Put(ctx, "posters/Alien/20250314_092653.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/posters/Alien/20250314_092653.png", result.URL)
	assert.NotEmpty(t, result.IntegrityTag)

	path, contentType, err := store.Open("posters/Alien/20250314_092653.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store := newTestLocalStore(t)

	assert.NoError(t, store.Delete(context.Background(), "posters/None/nothing.png"))
}

func TestLocalStoreSignedURLRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()
	key := "fichas/Alien/20250314_092653.pdf"

	_, err := store.Put(ctx, key, []byte("pdf"), "application/pdf")
	require.NoError(t, err)

	signed, err := store.SignedURL(ctx, key, time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(u.Path, key))

	q := u.Query()
	assert.NoError(t, store.ValidateSignedRequest(key, q.Get("exp"), q.Get("nonce"), q.Get("sig")))

	// A tampered signature is rejected.
	assert.Error(t, store.ValidateSignedRequest(key, q.Get("exp"), q.Get("nonce"), "bogus"))
}

func TestLocalStoreSignedURLMissingObject(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.SignedURL(context.Background(), "posters/None/x.png", time.Hour)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
}

func TestLocalStoreRejectsTraversalKeys(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Put(context.Background(), "../escape.txt", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestLocalStoreList(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "posters/Alien/a.png", []byte("a"), "image/png")
	require.NoError(t, err)
	_, err = store.Put(ctx, "fichas/Alien/b.pdf", []byte("b"), "application/pdf")
	require.NoError(t, err)

	keys, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posters/Alien/a.png", "fichas/Alien/b.pdf"}, keys)

	posters, err := store.List(ctx, "posters/")
	require.NoError(t, err)
	assert.Equal(t, []string{"posters/Alien/a.png"}, posters)
}
