package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
)

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	t.Run("upload and download", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "a/b.txt", strings.NewReader("hello")))

		reader, err := backend.Download(ctx, "a/b.txt")
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("upload with mime type", func(t *testing.T) {
		require.NoError(t, backend.UploadWithParams(ctx, strings.NewReader("png"), simplecms.UploadParams{
			ObjectKey: "img.png",
			MimeType:  "image/png",
		}))

		meta, err := backend.GetObjectMeta(ctx, "img.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", meta.ContentType)
		assert.Equal(t, int64(3), meta.Size)
	})

	t.Run("no direct urls", func(t *testing.T) {
		_, err := backend.URL(ctx, "img.png")
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "gone.txt", strings.NewReader("x")))
		require.NoError(t, backend.Delete(ctx, "gone.txt"))

		_, err := backend.Download(ctx, "gone.txt")
		assert.Error(t, err)
		assert.Error(t, backend.Delete(ctx, "gone.txt"))
	})
}
