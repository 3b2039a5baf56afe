package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/novelgrab"
)

// DefaultTextExtension is the file extension TextSink uses by default.
const DefaultTextExtension = ".txt"

var _ novelgrab.Sink = (*TextSink)(nil)

// TextSink writes each chapter to its own numbered file, ch001.txt,
// ch002.txt, and so on.
type TextSink struct {
	dir string
	ext string
}

// TextOption configures a TextSink.
type TextOption func(*TextSink)

// WithExtension sets the chapter file extension. A missing leading dot is
// added.
func WithExtension(ext string) TextOption {
	return func(s *TextSink) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// NewTextSink creates a TextSink writing into dir.
func NewTextSink(dir string, opts ...TextOption) *TextSink {
	s := &TextSink{dir: dir, ext: DefaultTextExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChapterFileName returns the file name for the chapter at index.
func ChapterFileName(index int, ext string) string {
	return fmt.Sprintf("ch%03d%s", index, ext)
}

// OnChapter writes the chapter body, replacing any file from an earlier run.
func (s *TextSink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, ChapterFileName(ch.Index, s.ext))
	return writeFileAtomic(path, []byte(ch.Body+"\n"))
}

// OnSummary does nothing; every chapter is already on disk.
func (s *TextSink) OnSummary(ctx context.Context, summary novelgrab.Summary) error {
	return nil
}
