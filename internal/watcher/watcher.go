// Package watcher turns inbox directory activity into lifecycle calls. It
// also sweeps files that were already sitting in the inbox at startup, so a
// restart never loses track of unprocessed documents.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"ablage-ai/internal/contextutil"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// Registry receives discovered inbox files. ProcessFile may block for
// seconds (stabilization, model call), so the watcher invokes it on its own
// goroutine per file.
type Registry interface {
	ProcessFile(ctx context.Context, path string) error
	Remove(filename string)
}

// Watcher watches one inbox directory for new files.
type Watcher struct {
	inboxPath string
	registry  Registry
	watcher   *fsnotify.Watcher
	stop      chan struct{}
}

// New creates a watcher for the inbox directory.
func New(inboxPath string, registry Registry) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	return &Watcher{
		inboxPath: inboxPath,
		registry:  registry,
		watcher:   fw,
		stop:      make(chan struct{}),
	}, nil
}

// Start registers the inbox with the filesystem watcher, sweeps files
// already present, and begins processing events in the background. Call
// Stop to clean up.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.inboxPath); err != nil {
		return fmt.Errorf("watching %s: %w", w.inboxPath, err)
	}

	if err := w.sweepExisting(ctx); err != nil {
		return err
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		// Already stopped.
	default:
		close(w.stop)
		_ = w.watcher.Close()
	}
}

// sweepExisting registers files that landed in the inbox before we started
// watching.
func (w *Watcher) sweepExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inboxPath)
	if err != nil {
		return fmt.Errorf("listing inbox: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.inboxPath, entry.Name())
		go w.process(ctx, path)
	}
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				go w.process(ctx, event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// The file left the inbox by other means; any pending
				// entry for it is stale now.
				w.registry.Remove(filepath.Base(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("inbox watcher error", "error", err)
		}
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	logger := contextutil.LoggerFromContext(ctx)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if err := w.registry.ProcessFile(ctx, path); err != nil {
		logger.Error("processing inbox file failed", "path", path, "error", err)
	}
}
