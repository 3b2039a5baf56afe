package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterSink(t *testing.T) {
	t.Parallel()

	t.Run("stores chapters under the book", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)
		sink := sqlite.NewChapterSink(db)

		book := &novelgrab.Book{SourceURL: "https://example.com/book/1/", Title: "Book"}
		require.NoError(t, sink.OnBook(ctx, book))
		require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Title: "一", Body: "a"}))
		require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 2, Title: "二", Body: "b"}))
		require.NoError(t, sink.OnSummary(ctx, novelgrab.Summary{Saved: 2, Total: 2}))

		heads, err := sqlite.NewChapterService(db).FindChapterHeads(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, heads, 2)
		assert.Equal(t, "一", heads[0].Title)
	})

	t.Run("rerun overwrites chapters in place", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)

		for _, body := range []string{"first", "second"} {
			sink := sqlite.NewChapterSink(db)
			require.NoError(t, sink.OnBook(ctx, &novelgrab.Book{SourceURL: "https://example.com/book/1/"}))
			require.NoError(t, sink.OnChapter(ctx, &novelgrab.Chapter{Index: 1, Body: body}))
		}

		book, err := sqlite.NewBookService(db).FindBookByURL(ctx, "https://example.com/book/1/")
		require.NoError(t, err)
		ch, err := sqlite.NewChapterService(db).FindChapter(ctx, book.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "second", ch.Body)
	})

	t.Run("chapter before book is rejected", func(t *testing.T) {
		t.Parallel()

		sink := sqlite.NewChapterSink(setupTestDB(t))
		err := sink.OnChapter(context.Background(), &novelgrab.Chapter{Index: 1, Body: "a"})

		assert.Equal(t, novelgrab.EINVALID, novelgrab.ErrorCode(err))
	})
}
