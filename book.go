package novelgrab

import (
	"context"
	"time"
)

// Book holds the metadata of a novel's landing page.
type Book struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CoverURL    string    `json:"coverUrl"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.SourceURL == "" {
		return Errorf(EINVALID, "book source URL required")
	}
	return nil
}

// BookService represents a service for managing books.
type BookService interface {
	// UpsertBook creates the book or refreshes its metadata when a book with
	// the same source URL exists. The book's ID is set on return.
	UpsertBook(ctx context.Context, book *Book) error

	// FindBookByURL retrieves a book by its source URL.
	// Returns ENOTFOUND if the book does not exist.
	FindBookByURL(ctx context.Context, sourceURL string) (*Book, error)

	// FindBooks retrieves all books ordered by most recently updated.
	FindBooks(ctx context.Context) ([]*Book, error)
}

// ChapterHead is a chapter without its body, used for listings.
type ChapterHead struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
}

// ChapterService represents a service for managing stored chapters.
type ChapterService interface {
	// UpsertChapter stores the chapter keyed by (book ID, index). An existing
	// row has its title, content, source URL, and timestamp refreshed.
	UpsertChapter(ctx context.Context, ch *Chapter) error

	// ChapterExists reports whether a chapter is stored at the index.
	ChapterExists(ctx context.Context, bookID string, index int) (bool, error)

	// FindChapter retrieves one chapter.
	// Returns ENOTFOUND if the chapter does not exist.
	FindChapter(ctx context.Context, bookID string, index int) (*Chapter, error)

	// FindChapterHeads lists a book's chapters in index order.
	FindChapterHeads(ctx context.Context, bookID string) ([]*ChapterHead, error)

	// CountChapters returns the number of stored chapters for a book.
	CountChapters(ctx context.Context, bookID string) (int, error)
}
