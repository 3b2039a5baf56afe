package mock

import (
	"context"

	"github.com/fwojciec/novelgrab"
)

var _ novelgrab.Sink = (*Sink)(nil)

// Sink is a mock implementation of novelgrab.Sink.
type Sink struct {
	OnChapterFn func(ctx context.Context, ch *novelgrab.Chapter) error
	OnSummaryFn func(ctx context.Context, s novelgrab.Summary) error
}

func (s *Sink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	return s.OnChapterFn(ctx, ch)
}

func (s *Sink) OnSummary(ctx context.Context, summary novelgrab.Summary) error {
	return s.OnSummaryFn(ctx, summary)
}

var _ novelgrab.BookSink = (*BookSink)(nil)

// BookSink is a mock implementation of novelgrab.BookSink.
type BookSink struct {
	Sink
	OnBookFn func(ctx context.Context, book *novelgrab.Book) error
}

func (s *BookSink) OnBook(ctx context.Context, book *novelgrab.Book) error {
	return s.OnBookFn(ctx, book)
}

var _ novelgrab.ResumeStore = (*ResumeStore)(nil)

// ResumeStore is a mock implementation of novelgrab.ResumeStore.
type ResumeStore struct {
	LastIndexFn     func(ctx context.Context, key string) (int, error)
	SaveLastIndexFn func(ctx context.Context, key string, index int) error
}

func (r *ResumeStore) LastIndex(ctx context.Context, key string) (int, error) {
	return r.LastIndexFn(ctx, key)
}

func (r *ResumeStore) SaveLastIndex(ctx context.Context, key string, index int) error {
	return r.SaveLastIndexFn(ctx, key, index)
}
