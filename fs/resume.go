package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/fwojciec/novelgrab"
)

// DefaultResumeFile is the resume file name used when none is configured.
const DefaultResumeFile = "resume.json"

var _ novelgrab.ResumeStore = (*ResumeFile)(nil)

// resumeEntry is the per-book record.
type resumeEntry struct {
	LastRead int `json:"last_read"`
}

// ResumeFile stores the last completed chapter index per book in a JSON
// object keyed by book:
//
//	{"https://example.com/book/1/": {"last_read": 12}}
//
// Checkpoints only move forward.
type ResumeFile struct {
	mu   sync.Mutex
	path string
}

// NewResumeFile creates a ResumeFile at path.
func NewResumeFile(path string) *ResumeFile {
	return &ResumeFile{path: path}
}

// LastIndex returns the last completed index for key, or 0 when the file or
// key does not exist.
func (r *ResumeFile) LastIndex(ctx context.Context, key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return 0, err
	}
	return state[key].LastRead, nil
}

// SaveLastIndex records index for key unless a later index is already
// recorded.
func (r *ResumeFile) SaveLastIndex(ctx context.Context, key string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return err
	}
	if state[key].LastRead >= index {
		return nil
	}
	state[key] = resumeEntry{LastRead: index}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, append(data, '\n'))
}

func (r *ResumeFile) load() (map[string]resumeEntry, error) {
	state := make(map[string]resumeEntry)

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, novelgrab.Errorf(novelgrab.EINVALID, "invalid resume file %s: %v", r.path, err)
	}
	return state, nil
}
