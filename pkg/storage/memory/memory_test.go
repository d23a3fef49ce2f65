package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelabs/catalog-backend/pkg/storage"
)

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	err := store.Put(ctx, storage.Object{
		Key:         "videoId-abc/type-banner",
		Content:     []byte("image bytes"),
		ContentType: "image/png",
		Metadata:    map[string]string{"name": "banner.png"},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "videoId-abc/type-banner")
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), got.Content)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "banner.png", got.Metadata["name"])
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	store := New()

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}

func TestListFiltersByPrefix(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, storage.Object{Key: "videoId-a/type-video"}))
	require.NoError(t, store.Put(ctx, storage.Object{Key: "videoId-a/type-trailer"}))
	require.NoError(t, store.Put(ctx, storage.Object{Key: "videoId-b/type-video"}))

	keys, err := store.List(ctx, "videoId-a/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.NotContains(t, keys, "videoId-b/type-video")
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, storage.Object{Key: "k"}))
	require.NoError(t, store.Delete(ctx, "k", "missing"))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.Zero(t, store.Len())
}
