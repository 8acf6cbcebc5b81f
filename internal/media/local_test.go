package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStore(dir, nil)
	require.NoError(t, err)
	return s, dir
}

func TestLocalStoreSaveAndOpen(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()

	key, size, err := s.Save(ctx, "Reel.MP4", "video/mp4", strings.NewReader("fake video"), 0)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".mp4"), key)
	assert.Equal(t, int64(10), size)

	_, err = os.Stat(filepath.Join(dir, key))
	require.NoError(t, err)

	f, info, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "fake video", string(data))
	assert.Equal(t, "video/mp4", info.MIME)
	assert.Equal(t, int64(10), info.Size)
}

func TestLocalStoreKeysAreUnique(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	a, _, err := s.Save(ctx, "clip.webm", "video/webm", strings.NewReader("a"), 0)
	require.NoError(t, err)
	b, _, err := s.Save(ctx, "clip.webm", "video/webm", strings.NewReader("b"), 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStoreExtensionFromMIME(t *testing.T) {
	s, _ := newStore(t)

	key, _, err := s.Save(context.Background(), "blob", "video/quicktime", strings.NewReader("x"), 0)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".mov"), key)
}

func TestLocalStoreLimit(t *testing.T) {
	s, dir := newStore(t)

	_, _, err := s.Save(context.Background(), "big.mp4", "video/mp4", bytes.NewReader(make([]byte, 11)), 10)
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial upload must be removed")

	_, size, err := s.Save(context.Background(), "ok.mp4", "video/mp4", bytes.NewReader(make([]byte, 10)), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestLocalStoreCancelledContext(t *testing.T) {
	s, dir := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Save(ctx, "a.mp4", "video/mp4", strings.NewReader("data"), 0)
	assert.True(t, errors.Is(err, context.Canceled))

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestLocalStoreDeleteAndRelease(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	key, _, err := s.Save(ctx, "a.mp4", "video/mp4", strings.NewReader("x"), 0)
	require.NoError(t, err)

	require.NoError(t, s.Release(ctx, Ref(key)))
	_, _, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// Releasing again, or releasing a bundled asset, is a no-op.
	assert.NoError(t, s.Release(ctx, Ref(key)))
	assert.NoError(t, s.Release(ctx, "/static/videos/sanhua.mp4"))
	assert.NoError(t, s.Release(ctx, "blob:http://localhost/abc"))

	assert.ErrorIs(t, s.Delete(ctx, key), ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"../etc/passwd", "..", "a/../../b", "sub/file.mp4", ".upload-123", ""} {
		_, _, err := s.Open(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.ErrorIs(t, s.Delete(ctx, key), ErrInvalidKey, key)
	}
}

func TestKeyFromRef(t *testing.T) {
	key, ok := KeyFromRef("/media/abc.mp4")
	assert.True(t, ok)
	assert.Equal(t, "abc.mp4", key)

	for _, ref := range []string{"", "/media/", "/static/x.mp4", "/media/a/b.mp4", "https://x/media/a.mp4"} {
		_, ok := KeyFromRef(ref)
		assert.False(t, ok, ref)
	}
}

func TestLocalStoreIgnoresUnknownExtension(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tests := []struct {
		name, mimeType, wantExt string
	}{
		{"clip.m4v", "video/mp4", ".mp4"},
		{"page.html", "video/mp4", ".mp4"},
		{"page.html", "text/html", ".bin"},
		{"CLIP.MOV", "application/octet-stream", ".mov"},
	}
	for _, tt := range tests {
		key, _, err := s.Save(ctx, tt.name, tt.mimeType, strings.NewReader("x"), 0)
		require.NoError(t, err)
		assert.Equal(t, tt.wantExt, filepath.Ext(key), tt.name)

		f, info, err := s.Open(ctx, key)
		require.NoError(t, err)
		f.Close()
		assert.NotContains(t, info.MIME, "text/html", tt.name)
	}
}
