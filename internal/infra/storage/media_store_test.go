package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"riptide/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MediaStore {
	t.Helper()

	root := t.TempDir()
	store, err := OpenMediaStore(config.MediaConfig{
		PublicDir:    filepath.Join(root, "public"),
		DetectionDir: filepath.Join(root, "detection"),
		ThumbnailDir: filepath.Join(root, "thumbnail"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestMediaStore_SaveUpload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path, err := store.SaveUpload(ctx, "beach.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, store.UploadPath("beach.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestMediaStore_NoMetadataSidecars(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveUpload(ctx, "beach.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	// The dir is served over a public static route; only the blob itself
	// may exist there.
	entries, err := os.ReadDir(store.PublicDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "beach.jpg", entries[0].Name())
}

func TestMediaStore_OpenUpload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveUpload(ctx, "clip.mp4", strings.NewReader("payload"))
	require.NoError(t, err)

	rd, err := store.OpenUpload(ctx, "clip.mp4")
	require.NoError(t, err)
	defer rd.Close()

	data, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMediaStore_UploadExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.UploadExists(ctx, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.SaveUpload(ctx, "present.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	ok, err = store.UploadExists(ctx, "present.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMediaStore_SeparateAreas(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveDetection(ctx, "result.jpg", strings.NewReader("annotated"))
	require.NoError(t, err)

	_, err = store.SaveThumbnail(ctx, "thumb.jpg", strings.NewReader("frame"))
	require.NoError(t, err)

	// Detection results must not leak into the public upload area.
	ok, err := store.UploadExists(ctx, "result.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.FileExists(t, filepath.Join(store.DetectionDir(), "result.jpg"))
	assert.FileExists(t, store.ThumbnailPath("thumb.jpg"))
}
