package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/novelgrab"
	"gopkg.in/yaml.v3"
)

var _ novelgrab.BookSink = (*MarkdownSink)(nil)

// MarkdownSink writes chapters to a single Markdown document. A new
// document starts with YAML front matter describing the book. An existing
// document is replaced unless the sink was created WithAppend.
type MarkdownSink struct {
	path   string
	append bool
	file   *os.File
	book   *novelgrab.Book
}

// MarkdownOption configures a MarkdownSink.
type MarkdownOption func(*MarkdownSink)

// WithAppend continues a document left by an earlier run instead of
// replacing it. Used for resumed runs.
func WithAppend() MarkdownOption {
	return func(s *MarkdownSink) {
		s.append = true
	}
}

// NewMarkdownSink creates a MarkdownSink writing to path.
func NewMarkdownSink(path string, opts ...MarkdownOption) *MarkdownSink {
	s := &MarkdownSink{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// frontMatter is the YAML header of a new document.
type frontMatter struct {
	Title   string `yaml:"title,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Status  string `yaml:"status,omitempty"`
	Cover   string `yaml:"cover,omitempty"`
	Source  string `yaml:"source"`
	Grabbed string `yaml:"grabbed"`
}

// FormatFrontMatter renders the book header: YAML front matter, then the
// title as a heading and the description.
func FormatFrontMatter(book *novelgrab.Book, grabbed time.Time) (string, error) {
	data, err := yaml.Marshal(frontMatter{
		Title:   book.Title,
		Author:  book.Author,
		Status:  book.Status,
		Cover:   book.CoverURL,
		Source:  book.SourceURL,
		Grabbed: grabbed.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	if book.Description != "" {
		b.WriteString(book.Description)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// FormatChapter renders one chapter section.
func FormatChapter(ch *novelgrab.Chapter) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(ch.DisplayTitle())
	b.WriteString("\n\n")
	for _, line := range strings.Split(ch.Body, "\n") {
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return b.String()
}

// OnBook remembers the book for the front matter.
func (s *MarkdownSink) OnBook(ctx context.Context, book *novelgrab.Book) error {
	s.book = book
	return nil
}

// OnChapter appends the chapter section, opening the document on first use.
func (s *MarkdownSink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	if err := s.open(); err != nil {
		return err
	}
	_, err := s.file.WriteString(FormatChapter(ch))
	return err
}

// OnSummary closes the document.
func (s *MarkdownSink) OnSummary(ctx context.Context, summary novelgrab.Summary) error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *MarkdownSink) open() error {
	if s.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if s.append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(s.path, flag, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	if info.Size() == 0 && s.book != nil {
		header, err := FormatFrontMatter(s.book, time.Now())
		if err != nil {
			f.Close()
			return err
		}
		if _, err := f.WriteString(header); err != nil {
			f.Close()
			return err
		}
	}

	s.file = f
	return nil
}
