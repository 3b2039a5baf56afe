package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sort"

	"github.com/fwojciec/novelgrab"
)

var _ novelgrab.Sink = (*JSONSink)(nil)

// JSONChapter is one element of the JSON bundle.
type JSONChapter struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
	Hash  string `json:"hash"`
}

// JSONSink collects chapters and writes them as a single JSON array when the
// run ends. Chapters already present in the file are kept unless the run
// produced the same index again.
type JSONSink struct {
	path     string
	chapters []JSONChapter
}

// NewJSONSink creates a JSONSink writing to path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// OnChapter buffers the chapter.
func (s *JSONSink) OnChapter(ctx context.Context, ch *novelgrab.Chapter) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	s.chapters = append(s.chapters, JSONChapter{
		Index: ch.Index,
		Title: ch.DisplayTitle(),
		URL:   ch.SourceURL,
		Text:  ch.Body,
		Hash:  ch.ContentHash,
	})
	return nil
}

// OnSummary merges the buffered chapters with the existing file and writes
// the result sorted by index.
func (s *JSONSink) OnSummary(ctx context.Context, summary novelgrab.Summary) error {
	existing, err := ReadJSONChapters(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	byIndex := make(map[int]JSONChapter, len(existing)+len(s.chapters))
	for _, ch := range existing {
		byIndex[ch.Index] = ch
	}
	for _, ch := range s.chapters {
		byIndex[ch.Index] = ch
	}

	merged := make([]JSONChapter, 0, len(byIndex))
	for _, ch := range byIndex {
		merged = append(merged, ch)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Index < merged[j].Index })

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}

// ReadJSONChapters reads a bundle written by JSONSink.
func ReadJSONChapters(path string) ([]JSONChapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chapters []JSONChapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return nil, novelgrab.Errorf(novelgrab.EINVALID, "invalid chapter bundle %s: %v", path, err)
	}
	return chapters, nil
}
