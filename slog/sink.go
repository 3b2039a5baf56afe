package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/novelgrab"
)

// Ensure LoggingSink implements novelgrab.BookSink.
var _ novelgrab.BookSink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with logging. It always implements BookSink;
// OnBook is forwarded only when the wrapped sink accepts books.
type LoggingSink struct {
	next   novelgrab.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next novelgrab.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// OnBook logs the book and forwards it to a wrapped BookSink.
func (s *LoggingSink) OnBook(ctx context.Context, book *novelgrab.Book) (err error) {
	defer func() {
		s.logger.Info("book",
			"url", book.SourceURL,
			"title", book.Title,
			"author", book.Author,
			"err", err,
		)
	}()
	if bs, ok := s.next.(novelgrab.BookSink); ok {
		return bs.OnBook(ctx, book)
	}
	return nil
}

// OnChapter delegates to the wrapped sink and logs the outcome.
func (s *LoggingSink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "chapter saved",
			"index", ch.Index,
			"title", ch.Title,
			"chars", utf8.RuneCountInString(ch.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.OnChapter(ctx, ch)
}

// OnSummary delegates to the wrapped sink and logs the run totals.
func (s *LoggingSink) OnSummary(ctx context.Context, summary novelgrab.Summary) (err error) {
	defer func() {
		s.logger.Info("summary",
			"saved", summary.Saved,
			"failed", summary.Failed,
			"skipped", summary.Skipped,
			"total", summary.Total,
			"interrupted", summary.Interrupted,
			"err", err,
		)
	}()
	return s.next.OnSummary(ctx, summary)
}
