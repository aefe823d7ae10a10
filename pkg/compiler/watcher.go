package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long the watcher waits after the last change
// before recompiling, so a burst of writes compiles once
const DefaultSettleDelay = 100 * time.Millisecond

// Result is the outcome of one compilation of a watched document
type Result struct {
	Path   string
	Source string // empty when Err is set
	Err    error
}

// Watcher recompiles a scene document every time it changes on disk
type Watcher struct {
	Path        string
	SettleDelay time.Duration

	onChange func(Result)
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the document at path. onChange is
// called from the Run goroutine after every compilation.
func NewWatcher(path string, onChange func(Result), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		Path:        filepath.Clean(path),
		SettleDelay: DefaultSettleDelay,
		onChange:    onChange,
		logger:      logger,
	}
}

// Run compiles the document once, then again after every change, until ctx
// is cancelled. The parent directory is watched rather than the file so
// editors that save by renaming a temporary file keep being picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.Path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching scene", "path", w.Path)

	w.compile()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopped watching scene", "path", w.Path)
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				w.logger.Debug("scene changed", "path", w.Path, "op", event.Op.String())
				settle = time.After(w.SettleDelay)
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				w.logger.Warn("scene removed, waiting for it to reappear", "path", w.Path)
			}
		case <-settle:
			settle = nil
			w.compile()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("scene watcher error", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) compile() {
	start := time.Now()
	source, err := CompileFile(w.Path)
	if err != nil {
		w.logger.Warn("scene failed to compile", "path", w.Path, "error", err)
	} else {
		w.logger.Info("scene compiled", "path", w.Path, "bytes", len(source), "duration", time.Since(start))
	}
	if w.onChange != nil {
		w.onChange(Result{Path: w.Path, Source: source, Err: err})
	}
}
