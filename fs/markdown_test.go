package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFrontMatter(t *testing.T) {
	t.Parallel()

	book := &novelgrab.Book{
		SourceURL:   "https://example.com/book/1/",
		Title:       "劍來",
		Author:      "烽火戲諸侯",
		Description: "少年出身寒微。",
	}

	got, err := fs.FormatFrontMatter(book, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "---\n"))
	assert.Contains(t, got, "title: 劍來\n")
	assert.Contains(t, got, "author: 烽火戲諸侯\n")
	assert.Contains(t, got, "source: https://example.com/book/1/\n")
	assert.Regexp(t, `grabbed: "?2026-03-04"?\n`, got)
	assert.NotContains(t, got, "status:")
	assert.True(t, strings.HasSuffix(got, "---\n\n少年出身寒微。\n\n"))
}

func TestFormatChapter(t *testing.T) {
	t.Parallel()

	got := fs.FormatChapter(&novelgrab.Chapter{Index: 3, Body: "甲\n乙"})

	assert.Equal(t, "# Chapter 3\n\n甲\n\n乙\n\n", got)
}

// Story: Markdown Document
// A run writes chapter sections to one document; a resumed run appends.

func TestMarkdownSink_WritesDocument(t *testing.T) {
	t.Parallel()

	// Given a markdown sink that has seen the book
	path := filepath.Join(t.TempDir(), "out", "book.md")
	sink := fs.NewMarkdownSink(path)
	ctx := context.Background()
	require.NoError(t, sink.OnBook(ctx, &novelgrab.Book{SourceURL: "https://example.com/book/1/", Title: "T"}))

	// When chapters arrive and the run ends
	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Title: "第一章", Body: "a"}))
	require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 2, Body: "b"}))
	require.NoError(t, sink.OnSummary(ctx, novelgrab.Summary{Saved: 2, Total: 2}))

	// Then the document has front matter followed by both sections
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	first := strings.Index(doc, "# 第一章\n\na\n\n")
	second := strings.Index(doc, "# Chapter 2\n\nb\n\n")
	assert.Positive(t, first)
	assert.Greater(t, second, first)
}

func TestMarkdownSink_AppendsOnResume(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.md")
	ctx := context.Background()
	book := &novelgrab.Book{SourceURL: "https://example.com/book/1/", Title: "T"}

	// Given a document from an earlier run
	first := fs.NewMarkdownSink(path)
	require.NoError(t, first.OnBook(ctx, book))
	require.NoError(t, first.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Body: "a"}))
	require.NoError(t, first.OnSummary(ctx, novelgrab.Summary{}))

	// When a resumed run adds the next chapter
	second := fs.NewMarkdownSink(path, fs.WithAppend())
	require.NoError(t, second.OnBook(ctx, book))
	require.NoError(t, second.OnChapter(ctx, &novelgrab.Chapter{Index: 2, Body: "b"}))
	require.NoError(t, second.OnSummary(ctx, novelgrab.Summary{}))

	// Then the front matter appears once and both chapters are present
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.Equal(t, 1, strings.Count(doc, "source: https://example.com/book/1/"))
	assert.Contains(t, doc, "# Chapter 1\n\na\n\n")
	assert.Contains(t, doc, "# Chapter 2\n\nb\n\n")
}

func TestMarkdownSink_RerunReplacesDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.md")
	ctx := context.Background()
	book := &novelgrab.Book{SourceURL: "https://example.com/book/1/", Title: "T"}

	// Given the same book grabbed twice without resuming
	for range 2 {
		sink := fs.NewMarkdownSink(path)
		require.NoError(t, sink.OnBook(ctx, book))
		require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Title: "第1章", Body: "a"}))
		require.NoError(t, sink.OnSummary(ctx, novelgrab.Summary{Saved: 1, Total: 1}))
	}

	// Then the document holds a single copy
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.Equal(t, 1, strings.Count(doc, "# 第1章"))
	assert.Equal(t, 1, strings.Count(doc, "source: https://example.com/book/1/"))
}

func TestMarkdownSink_NoChaptersWritesNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.md")
	sink := fs.NewMarkdownSink(path)

	require.NoError(t, sink.OnSummary(context.Background(), novelgrab.Summary{}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
