package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkChapterUpserts simulates a grab run: one book and many chapters
// written in index order, with each chapter roughly the size of a real one.
func BenchmarkChapterUpserts(b *testing.B) {
	b.Run("memory", func(b *testing.B) {
		benchmarkChapterUpserts(b, ":memory:")
	})

	b.Run("wal_file", func(b *testing.B) {
		benchmarkChapterUpserts(b, filepath.Join(b.TempDir(), "bench.db"))
	})
}

func benchmarkChapterUpserts(b *testing.B, path string) {
	b.Helper()

	db := sqlite.NewDB(path)
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	sink := sqlite.NewChapterSink(db)
	require.NoError(b, sink.OnBook(ctx, &novelgrab.Book{
		SourceURL: "https://example.com/book/1/",
		Title:     "Benchmark",
	}))

	body := strings.Repeat("他推開門，屋裡一片漆黑。\n", 200)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ch := &novelgrab.Chapter{
			Index:     i%2000 + 1,
			Title:     fmt.Sprintf("第%d章", i+1),
			Body:      body,
			SourceURL: fmt.Sprintf("https://example.com/read/1/p%d.html", i+1),
		}
		if err := sink.OnChapter(ctx, ch); err != nil {
			b.Fatal(err)
		}
	}
}
