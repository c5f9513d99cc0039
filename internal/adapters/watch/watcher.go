// Package watch re-syncs a session controller when another process rewrites
// or removes the stored session record.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	tomlrepo "github.com/bnema/interview-prep-cli/internal/adapters/repo/toml"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

type Syncer interface {
	Sync(ctx context.Context) application.SessionSnapshot
}

type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// CredentialWatcher watches the directory holding the record rather than the
// file itself: atomic writes replace the inode and would drop a file watch.
type CredentialWatcher struct {
	name     string
	syncer   Syncer
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

func New(path string, syncer Syncer, opts Options) (*CredentialWatcher, error) {
	if syncer == nil {
		return nil, errors.New("syncer is required")
	}

	normalized, err := tomlrepo.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("watch credentials: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	dir := filepath.Dir(normalized)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &CredentialWatcher{
		name:     filepath.Base(normalized),
		syncer:   syncer,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		watcher:  watcher,
	}, nil
}

// Run blocks until ctx is done, calling Sync once per burst of changes to
// the watched record. It always closes the underlying watcher.
func (w *CredentialWatcher) Run(ctx context.Context) error {
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.schedule(ctx)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("credential watcher error", "error", err)
		}
	}
}

func (w *CredentialWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}

	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func (w *CredentialWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		snap := w.syncer.Sync(ctx)
		w.logger.Debug("stored session changed", "state", snap.State.String())
	})
}
