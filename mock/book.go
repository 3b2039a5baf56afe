package mock

import (
	"context"

	"github.com/fwojciec/novelgrab"
)

var _ novelgrab.BookService = (*BookService)(nil)

// BookService is a mock implementation of novelgrab.BookService.
type BookService struct {
	UpsertBookFn    func(ctx context.Context, book *novelgrab.Book) error
	FindBookByURLFn func(ctx context.Context, sourceURL string) (*novelgrab.Book, error)
	FindBooksFn     func(ctx context.Context) ([]*novelgrab.Book, error)
}

func (s *BookService) UpsertBook(ctx context.Context, book *novelgrab.Book) error {
	return s.UpsertBookFn(ctx, book)
}

func (s *BookService) FindBookByURL(ctx context.Context, sourceURL string) (*novelgrab.Book, error) {
	return s.FindBookByURLFn(ctx, sourceURL)
}

func (s *BookService) FindBooks(ctx context.Context) ([]*novelgrab.Book, error) {
	return s.FindBooksFn(ctx)
}

var _ novelgrab.ChapterService = (*ChapterService)(nil)

// ChapterService is a mock implementation of novelgrab.ChapterService.
type ChapterService struct {
	UpsertChapterFn    func(ctx context.Context, ch *novelgrab.Chapter) error
	ChapterExistsFn    func(ctx context.Context, bookID string, index int) (bool, error)
	FindChapterFn      func(ctx context.Context, bookID string, index int) (*novelgrab.Chapter, error)
	FindChapterHeadsFn func(ctx context.Context, bookID string) ([]*novelgrab.ChapterHead, error)
	CountChaptersFn    func(ctx context.Context, bookID string) (int, error)
}

func (s *ChapterService) UpsertChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	return s.UpsertChapterFn(ctx, ch)
}

func (s *ChapterService) ChapterExists(ctx context.Context, bookID string, index int) (bool, error) {
	return s.ChapterExistsFn(ctx, bookID, index)
}

func (s *ChapterService) FindChapter(ctx context.Context, bookID string, index int) (*novelgrab.Chapter, error) {
	return s.FindChapterFn(ctx, bookID, index)
}

func (s *ChapterService) FindChapterHeads(ctx context.Context, bookID string) ([]*novelgrab.ChapterHead, error) {
	return s.FindChapterHeadsFn(ctx, bookID)
}

func (s *ChapterService) CountChapters(ctx context.Context, bookID string) (int, error) {
	return s.CountChaptersFn(ctx, bookID)
}
