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

func TestChapterFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ch001.txt", fs.ChapterFileName(1, ".txt"))
	assert.Equal(t, "ch042.text", fs.ChapterFileName(42, ".text"))
	assert.Equal(t, "ch1234.txt", fs.ChapterFileName(1234, ".txt"))
}

// Story: Sequential Text Files
// Each chapter becomes its own zero-padded numbered file.

func TestTextSink_WritesNumberedFiles(t *testing.T) {
	t.Parallel()

	// Given a text sink targeting a fresh directory
	dir := filepath.Join(t.TempDir(), "chapters")
	sink := fs.NewTextSink(dir)
	ctx := context.Background()

	// When two chapters arrive
	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Body: "第一段\n第二段"}))
	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 2, Body: "後來"}))
	require.NoError(t, sink.OnSummary(ctx, novelgrab.Summary{Saved: 2, Total: 2}))

	// Then each is written to its numbered file
	data, err := os.ReadFile(filepath.Join(dir, "ch001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "第一段\n第二段\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "ch002.txt"))
	require.NoError(t, err)
	assert.Equal(t, "後來\n", string(data))
}

func TestTextSink_CustomExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewTextSink(dir, fs.WithExtension("text"))

	require.NoError(t, sink.OnChapter(context.Background(), &novelgrab.Chapter{Index: 7, Body: "x"}))

	_, err := os.Stat(filepath.Join(dir, "ch007.text"))
	require.NoError(t, err)
}

func TestTextSink_OverwritesEarlierRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewTextSink(dir)
	ctx := context.Background()

	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Body: "old"}))
	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Body: "new"}))

	data, err := os.ReadFile(filepath.Join(dir, "ch001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestTextSink_RejectsEmptyChapter(t *testing.T) {
	t.Parallel()

	sink := fs.NewTextSink(t.TempDir())
	err := sink.OnChapter(context.Background(), &novelgrab.Chapter{Index: 1})

	assert.Equal(t, novelgrab.EINVALID, novelgrab.ErrorCode(err))
}
