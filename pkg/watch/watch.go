// Package watch reports changes to fixture files while the server runs.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/getmockd/stubservice/pkg/logging"
)

// Event describes a change to a fixture file.
type Event struct {
	// Op is one of "create", "write", "remove", "rename".
	Op string
	// Path is relative to the watched root, slash-separated.
	Path string
}

// Watcher recursively watches a stub directory.
type Watcher struct {
	root     string
	log      *slog.Logger
	onChange func(Event)
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger change events are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// OnChange registers a callback invoked for every fixture event, after it is logged.
func OnChange(fn func(Event)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// New starts watching root and every directory below it.
func New(root string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		root: root,
		log:  logging.Nop(),
		fsw:  fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.log.Info("watching fixtures", "dir", w.root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("fixture watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watching new directory", "dir", ev.Name, "error", err)
			}
			return
		}
	}
	if !strings.HasSuffix(ev.Name, fixture.Extension) {
		return
	}

	op := opName(ev.Op)
	if op == "" {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	change := Event{Op: op, Path: filepath.ToSlash(rel)}

	w.log.Info("fixture changed", "op", change.Op, "path", change.Path)
	if w.onChange != nil {
		w.onChange(change)
	}
}

// addTree watches dir and all directories below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != dir {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
