// Package watcher provides a debounced file watcher used by the CLI to
// re-run analysis whenever a mesh file changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single file for changes and triggers a callback.
// The containing directory is watched rather than the file itself, because
// most editors and slicers replace files on save instead of writing in
// place.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	path     string
	callback func(string)
	debounce time.Duration
	timer    *time.Timer
}

// New creates a file watcher with the given debounce interval.
func New(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		debounce: debounce,
	}, nil
}

// Watch starts watching the given file. callback is called with the file
// path after changes settle for the debounce interval.
func (fw *FileWatcher) Watch(file string, callback func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	fw.path = absPath
	fw.callback = callback
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	go fw.run()
	return nil
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.handleEvent(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watcher error: %v\n", err)
		}
	}
}

// handleEvent schedules the callback for events touching the watched file,
// resetting the debounce timer on every new event.
func (fw *FileWatcher) handleEvent(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if path != fw.path {
		return
	}

	if fw.timer != nil {
		fw.timer.Stop()
	}
	callback := fw.callback
	watched := fw.path
	fw.timer = time.AfterFunc(fw.debounce, func() {
		callback(watched)
	})
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
