package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file reports zero", func(t *testing.T) {
		t.Parallel()

		r := fs.NewResumeFile(filepath.Join(t.TempDir(), "resume.json"))
		n, err := r.LastIndex(context.Background(), "https://example.com/book/1/")

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("saves and reads per key", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		r := fs.NewResumeFile(filepath.Join(t.TempDir(), "resume.json"))

		require.NoError(t, r.SaveLastIndex(ctx, "a", 3))
		require.NoError(t, r.SaveLastIndex(ctx, "b", 7))

		n, err := r.LastIndex(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = r.LastIndex(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("checkpoint only moves forward", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		r := fs.NewResumeFile(filepath.Join(t.TempDir(), "resume.json"))

		require.NoError(t, r.SaveLastIndex(ctx, "a", 5))
		require.NoError(t, r.SaveLastIndex(ctx, "a", 2))

		n, err := r.LastIndex(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("file uses last_read records", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.json")
		r := fs.NewResumeFile(path)

		require.NoError(t, r.SaveLastIndex(context.Background(), "site", 12))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"site": {"last_read": 12}}`, string(data))
	})

	t.Run("reads file written elsewhere", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"site": {"last_read": 4}}`), 0644))

		n, err := fs.NewResumeFile(path).LastIndex(context.Background(), "site")
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("corrupt file is EINVALID", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.json")
		require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

		_, err := fs.NewResumeFile(path).LastIndex(context.Background(), "site")
		assert.Equal(t, novelgrab.EINVALID, novelgrab.ErrorCode(err))
	})
}
