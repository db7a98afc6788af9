package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher calls onChange once when one of the loaded config files is
// written, created or replaced. Directories are watched so editors that
// save through a rename are seen too.
type Watcher struct {
	logger   *zap.Logger
	files    map[string]bool
	onChange func()

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
	fired   bool
}

// NewWatcher creates a watcher for files; nothing is watched until Start
func NewWatcher(logger *zap.Logger, files []string, onChange func()) *Watcher {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = true
	}
	return &Watcher{logger: logger, files: set, onChange: onChange}
}

// Start begins watching. With no files it does nothing.
func (w *Watcher) Start(ctx context.Context) error {
	if len(w.files) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(watcher)

	w.logger.Info("Watching config for changes", zap.Int("files", len(w.files)))
	return nil
}

// Stop ends watching
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	watcher := w.watcher
	w.watcher = nil
	w.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(watcher *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.trigger(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) trigger(event fsnotify.Event) {
	w.mu.Lock()
	if w.fired {
		w.mu.Unlock()
		return
	}
	w.fired = true
	w.mu.Unlock()

	w.logger.Info("Config file changed, restarting",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))
	w.onChange()
}
