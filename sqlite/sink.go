package sqlite

import (
	"context"

	"github.com/fwojciec/novelgrab"
)

var _ novelgrab.BookSink = (*ChapterSink)(nil)

// ChapterSink stores a run's book and chapters.
type ChapterSink struct {
	Books    novelgrab.BookService
	Chapters novelgrab.ChapterService

	bookID string
}

// NewChapterSink creates a ChapterSink backed by db.
func NewChapterSink(db *DB) *ChapterSink {
	return &ChapterSink{
		Books:    NewBookService(db),
		Chapters: NewChapterService(db),
	}
}

// OnBook upserts the book; subsequent chapters are stored under it.
func (s *ChapterSink) OnBook(ctx context.Context, book *novelgrab.Book) error {
	if err := s.Books.UpsertBook(ctx, book); err != nil {
		return err
	}
	s.bookID = book.ID
	return nil
}

// OnChapter upserts the chapter under the current book.
func (s *ChapterSink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	if s.bookID == "" {
		return novelgrab.Errorf(novelgrab.EINVALID, "no book stored before chapter %d", ch.Index)
	}
	ch.BookID = s.bookID
	return s.Chapters.UpsertChapter(ctx, ch)
}

// OnSummary does nothing; the store needs no finalization.
func (s *ChapterSink) OnSummary(ctx context.Context, summary novelgrab.Summary) error {
	return nil
}
