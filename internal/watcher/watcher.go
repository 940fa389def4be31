// Package watcher monitors a project tree and triggers revalidation when
// its folders change. Only directory-level events matter here; file writes
// inside datatype folders never affect name validity.
package watcher

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle delay before a change triggers revalidation.
const DefaultDebounce = 2 * time.Second

// Watcher observes the subject/session levels of a project tree.
type Watcher struct {
	root      string
	debouncer *Debouncer
	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
}

// New creates a Watcher over the given project root. onChange is invoked
// (debounced) after any folder is created, renamed or removed under root.
func New(root string, debounce time.Duration, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:      root,
		debouncer: NewDebouncer(debounce, onChange),
		done:      make(chan struct{}),
	}
}

// Start begins watching. All existing directories under the root are added
// recursively; directories created later are added as they appear.
func (w *Watcher) Start() error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := w.addRecursive(w.root); err != nil {
		w.fsWatcher.Close()
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop ends the watch session and cancels any pending trigger.
func (w *Watcher) Stop() {
	close(w.done)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}
	w.wg.Wait()
	w.debouncer.Cancel()
}

// addRecursive registers dir and every directory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

// loop consumes filesystem events until Stop is called.
func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories must join the watch set before their
				// own children can be observed.
				_ = w.addRecursive(event.Name)
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.debouncer.Trigger()
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}
