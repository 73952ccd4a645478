// Package watch reloads sketch files when they change on disk, so an
// externally edited sketch (or script) shows up without restarting the
// application.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the event bursts editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches files for changes and triggers callbacks after a
// debounce interval.
type Watcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	onError   func(error)
}

// New creates a watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	return &Watcher{
		watcher:   fsw,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// SetErrorHandler installs a handler for watcher errors. Without one,
// errors are dropped.
func (w *Watcher) SetErrorHandler(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Watch registers files and the callback invoked when one changes.
// The callback receives the absolute path of the changed file.
func (w *Watcher) Watch(files []string, callback func(string)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("watch: resolve path %s: %w", file, err)
		}
		if err := w.watcher.Add(absPath); err != nil {
			return fmt.Errorf("watch: add %s: %w", absPath, err)
		}
		w.callbacks[absPath] = callback
	}
	return nil
}

// Start begins delivering change events. It returns immediately; the
// event loop runs until Close.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				// Saves arrive as writes, or as creates when the
				// editor replaces the file.
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					w.handleChange(event.Name)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.mu.Lock()
				handler := w.onError
				w.mu.Unlock()
				if handler != nil {
					handler(err)
				}
			}
		}
	}()
}

// handleChange resets the debounce timer for the changed file.
func (w *Watcher) handleChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	callback, exists := w.callbacks[path]
	if !exists {
		return
	}

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		callback(path)
	})
}

// RemoveAll stops watching every registered file.
func (w *Watcher) RemoveAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for file := range w.callbacks {
		if err := w.watcher.Remove(file); err != nil {
			return err
		}
	}
	w.callbacks = make(map[string]func(string))
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	return nil
}

// Close stops the watcher and its event loop.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
