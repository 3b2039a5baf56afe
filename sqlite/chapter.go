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
var _ novelgrab.ChapterService = (*ChapterService)(nil)

// ChapterService implements novelgrab.ChapterService using SQLite.
type ChapterService struct {
	db *DB
}

// NewChapterService creates a new ChapterService.
func NewChapterService(db *DB) *ChapterService {
	return &ChapterService{db: db}
}

// UpsertChapter stores the chapter keyed by (book ID, index). A stored
// chapter at the same index has its title, content, source URL, hash, and
// timestamp replaced.
func (s *ChapterService) UpsertChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	if ch.BookID == "" {
		return novelgrab.Errorf(novelgrab.EINVALID, "chapter book ID required")
	}
	if ch.ContentHash == "" {
		ch.ContentHash = hashContent(ch.Body)
	}

	now := time.Now().UTC()
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO chapters (id, book_id, index_num, title, content, source_url, content_hash, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (book_id, index_num) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			source_url = excluded.source_url,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		RETURNING id
	`, uuid.New().String(), ch.BookID, ch.Index, ch.Title, ch.Body, ch.SourceURL, ch.ContentHash,
		now.Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}

	ch.ID = id
	ch.UpdatedAt = now.Truncate(time.Second)
	return nil
}

// ChapterExists reports whether a chapter is stored at the index.
func (s *ChapterService) ChapterExists(ctx context.Context, bookID string, index int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM chapters WHERE book_id = ? AND index_num = ?)
	`, bookID, index).Scan(&exists)
	return exists, err
}

// FindChapter retrieves one chapter with its content.
func (s *ChapterService) FindChapter(ctx context.Context, bookID string, index int) (*novelgrab.Chapter, error) {
	var ch novelgrab.Chapter
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, book_id, index_num, title, content, source_url, content_hash, updated_at
		FROM chapters
		WHERE book_id = ? AND index_num = ?
	`, bookID, index).Scan(&ch.ID, &ch.BookID, &ch.Index, &ch.Title, &ch.Body, &ch.SourceURL,
		&ch.ContentHash, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, novelgrab.Errorf(novelgrab.ENOTFOUND, "chapter %d not found", index)
	}
	if err != nil {
		return nil, err
	}

	if ch.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &ch, nil
}

// FindChapterHeads lists a book's chapters in index order without content.
func (s *ChapterService) FindChapterHeads(ctx context.Context, bookID string) ([]*novelgrab.ChapterHead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, index_num, title
		FROM chapters
		WHERE book_id = ?
		ORDER BY index_num ASC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var heads []*novelgrab.ChapterHead
	for rows.Next() {
		var h novelgrab.ChapterHead
		if err := rows.Scan(&h.ID, &h.Index, &h.Title); err != nil {
			return nil, err
		}
		heads = append(heads, &h)
	}
	return heads, rows.Err()
}

// CountChapters returns the number of stored chapters for a book.
func (s *ChapterService) CountChapters(ctx context.Context, bookID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters WHERE book_id = ?`, bookID).Scan(&n)
	return n, err
}
