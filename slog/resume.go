package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/novelgrab"
)

// Ensure LoggingResumeStore implements novelgrab.ResumeStore.
var _ novelgrab.ResumeStore = (*LoggingResumeStore)(nil)

// LoggingResumeStore wraps a ResumeStore with debug logging.
type LoggingResumeStore struct {
	next   novelgrab.ResumeStore
	logger *slog.Logger
}

// NewLoggingResumeStore creates a new LoggingResumeStore.
func NewLoggingResumeStore(next novelgrab.ResumeStore, logger *slog.Logger) *LoggingResumeStore {
	return &LoggingResumeStore{next: next, logger: logger}
}

// LastIndex delegates to the wrapped store and logs the checkpoint found.
func (r *LoggingResumeStore) LastIndex(ctx context.Context, key string) (index int, err error) {
	defer func() {
		r.logger.Info("resume",
			"key", key,
			"last_read", index,
			"err", err,
		)
	}()
	return r.next.LastIndex(ctx, key)
}

// SaveLastIndex delegates to the wrapped store.
func (r *LoggingResumeStore) SaveLastIndex(ctx context.Context, key string, index int) (err error) {
	defer func() {
		r.logger.Debug("checkpoint",
			"key", key,
			"index", index,
			"err", err,
		)
	}()
	return r.next.SaveLastIndex(ctx, key, index)
}
