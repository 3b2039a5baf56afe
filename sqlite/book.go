package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/novelgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelgrab.BookService = (*BookService)(nil)

// BookService implements novelgrab.BookService using SQLite.
type BookService struct {
	db *DB
}

// NewBookService creates a new BookService.
func NewBookService(db *DB) *BookService {
	return &BookService{db: db}
}

// UpsertBook creates the book, or refreshes the metadata of the book with the
// same source URL. Empty fields never overwrite stored values.
func (s *BookService) UpsertBook(ctx context.Context, book *novelgrab.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	var id, createdAt string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (id, source_url, title, author, cover_url, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_url) DO UPDATE SET
			title = COALESCE(NULLIF(excluded.title, ''), books.title),
			author = COALESCE(NULLIF(excluded.author, ''), books.author),
			cover_url = COALESCE(NULLIF(excluded.cover_url, ''), books.cover_url),
			description = COALESCE(NULLIF(excluded.description, ''), books.description),
			status = COALESCE(NULLIF(excluded.status, ''), books.status),
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, uuid.New().String(), book.SourceURL, book.Title, book.Author, book.CoverURL, book.Description,
		book.Status, now.Format(time.RFC3339), now.Format(time.RFC3339)).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	created, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return err
	}

	book.ID = id
	book.CreatedAt = created
	book.UpdatedAt = now.Truncate(time.Second)
	return nil
}

// FindBookByURL retrieves a book by its source URL.
func (s *BookService) FindBookByURL(ctx context.Context, sourceURL string) (*novelgrab.Book, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, author, cover_url, description, status, created_at, updated_at
		FROM books
		WHERE source_url = ?
	`, sourceURL)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, novelgrab.Errorf(novelgrab.ENOTFOUND, "book not found: %s", sourceURL)
	}
	return book, err
}

// FindBooks retrieves all books, most recently updated first.
func (s *BookService) FindBooks(ctx context.Context) ([]*novelgrab.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, title, author, cover_url, description, status, created_at, updated_at
		FROM books
		ORDER BY updated_at DESC, title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*novelgrab.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*novelgrab.Book, error) {
	var book novelgrab.Book
	var createdAt, updatedAt string

	if err := row.Scan(&book.ID, &book.SourceURL, &book.Title, &book.Author, &book.CoverURL,
		&book.Description, &book.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if book.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if book.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &book, nil
}
