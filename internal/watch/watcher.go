// Package watch keeps a browsing session's file list in step with the
// directory tree it came from.
package watch

import (
	"os"
	"path/filepath"
	"sync"

	"imgbrowse/internal/log"
	"imgbrowse/internal/scan"

	"github.com/fsnotify/fsnotify"
)

// Op classifies a watched file event
type Op int

const (
	// Added means a regular file appeared under the watched tree
	Added Op = iota
	// Removed means a previously seen path went away
	Removed
)

// Event is one file change under the watched tree
type Event struct {
	Path string
	Op   Op
}

// Watcher monitors a directory tree for file changes using fsnotify
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan Event
	stopChan  chan struct{}

	mutex   sync.Mutex
	running bool
}

// New creates a new tree watcher
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan Event, 64),
		stopChan:  make(chan struct{}),
	}, nil
}

// AddTree registers root and every subdirectory below it with the watcher.
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return err
		}
		log.With(log.F("directory", path)).Debug("Watching directory")
		return nil
	})
}

// Events returns the channel that delivers file change events
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins delivering events. Safe to call once.
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)
		}
	}
}

// handle turns an fsnotify event into zero or more Events. A created
// directory joins the watch set and its existing contents are announced,
// since files may land between mkdir and the Add call.
func (w *Watcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create):
		info, err := os.Lstat(ev.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if err := w.AddTree(ev.Name); err != nil {
				log.Warnf("failed to watch new directory %s: %v", ev.Name, err)
				return
			}
			files, err := scan.List(ev.Name)
			if err != nil {
				return
			}
			for _, f := range files {
				w.emit(Event{Path: f, Op: Added})
			}
			return
		}
		w.emit(Event{Path: ev.Name, Op: Added})
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		// The path is gone; the session drops it if it was listed.
		w.emit(Event{Path: ev.Name, Op: Removed})
	}
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		log.Debugf("watch event dropped: %s", ev.Path)
	}
}

// Stop halts event delivery
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
}

// Close stops the watcher and releases the underlying fsnotify resources
func (w *Watcher) Close() error {
	w.Stop()
	return w.fsWatcher.Close()
}
