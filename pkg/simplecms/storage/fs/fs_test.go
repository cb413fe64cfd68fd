package fs_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/fs"
)

func TestFilesystemBackend(t *testing.T) {
	ctx := context.Background()

	backend, err := fs.New(fs.Config{BaseDir: t.TempDir(), URLPrefix: "/media"})
	require.NoError(t, err)

	t.Run("upload and download", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "posts/cover.txt", strings.NewReader("cover")))

		reader, err := backend.Download(ctx, "posts/cover.txt")
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "cover", string(data))
	})

	t.Run("metadata", func(t *testing.T) {
		meta, err := backend.GetObjectMeta(ctx, "posts/cover.txt")
		require.NoError(t, err)
		assert.Equal(t, int64(5), meta.Size)
		assert.NotEmpty(t, meta.ContentType)
	})

	t.Run("url under prefix", func(t *testing.T) {
		url, err := backend.URL(ctx, "posts/cover.txt")
		require.NoError(t, err)
		assert.Equal(t, "/media/posts/cover.txt", url)
	})

	t.Run("delete cleans up", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "posts/cover.txt"))

		_, err := backend.Download(ctx, "posts/cover.txt")
		assert.Error(t, err)
	})

	t.Run("missing base dir rejected", func(t *testing.T) {
		_, err := fs.New(fs.Config{})
		assert.Error(t, err)
	})

	t.Run("no prefix means no urls", func(t *testing.T) {
		plain, err := fs.New(fs.Config{BaseDir: t.TempDir()})
		require.NoError(t, err)

		_, err = plain.URL(ctx, "x")
		assert.Error(t, err)
	})
}
