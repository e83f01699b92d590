// Package watch adapts the fsnotify event stream into detection events
// and fans them out to response tasks.
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/live-labs/palangrotte/internal/logger"
)

// Kind classifies a filesystem event.
type Kind int

const (
	// KindAccess covers signals that carry no modification: pure reads
	// and attribute refreshes, including the registry's own re-arm
	// touch. Access events never trigger a response.
	KindAccess Kind = iota
	KindCreate
	KindWrite
	KindRemove
	KindRename
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindCreate:
		return "create"
	case KindWrite:
		return "write"
	case KindRemove:
		return "remove"
	case KindRename:
		return "rename"
	default:
		return "other"
	}
}

// Event is one detection signal from the watcher. Consumed once, never
// persisted.
type Event struct {
	Paths []string
	Kind  Kind
}

// Watcher wraps fsnotify: folder registration for the registry and a
// converted event stream for the router.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan Event
	log    *logger.Log
}

// NewWatcher constructs the underlying fsnotify watcher and starts the
// conversion goroutine. Construction failure is fatal for the daemon.
func NewWatcher(log *logger.Log) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{fs: fsw, events: make(chan Event), log: log}
	go w.forward()
	return w, nil
}

// Watch registers a folder recursively. fsnotify watches are per
// directory, so every subdirectory is added individually.
func (w *Watcher) Watch(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(p)
		}
		return nil
	})
}

// Events returns the converted event stream. The channel closes when the
// watcher closes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the underlying watcher; the event stream drains and
// closes.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) forward() {
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				close(w.events)
				return
			}
			w.events <- Event{Paths: []string{e.Name}, Kind: kindOf(e.Op)}
		case err, ok := <-w.fs.Errors:
			if !ok {
				close(w.events)
				return
			}
			w.log.Printf("Watcher error: %v", err)
		}
	}
}

// kindOf maps fsnotify op bits onto detection kinds. A bare Chmod is the
// attribute refresh produced by the re-arm touch and is classed as
// access-only; anything combined with a real modification keeps the
// modification kind.
func kindOf(op fsnotify.Op) Kind {
	switch {
	case op.Has(fsnotify.Create):
		return KindCreate
	case op.Has(fsnotify.Write):
		return KindWrite
	case op.Has(fsnotify.Remove):
		return KindRemove
	case op.Has(fsnotify.Rename):
		return KindRename
	case op.Has(fsnotify.Chmod):
		return KindAccess
	default:
		return KindOther
	}
}
