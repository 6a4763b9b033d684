// ABOUTME: Filesystem watcher that re-parses the lattice file on change and swaps
// ABOUTME: the viewer server's snapshot, keeping the previous one on parse failure.
package web

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/2389-research/latviz/lattice"
)

// Watcher reloads a single lattice file into a Server whenever it changes on
// disk. The parent directory is watched rather than the file itself so that
// editors replacing the file (write-to-temp-then-rename) are still observed.
type Watcher struct {
	fsw       *fsnotify.Watcher
	server    *Server
	path      string
	transform lattice.LabelTransform
}

// NewWatcher starts watching the lattice file at path and begins delivering
// reloads to the server. Close releases the watch.
func NewWatcher(server *Server, path string, transform lattice.LabelTransform) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{fsw: fsw, server: server, path: abs, transform: transform}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.Reload(); err != nil {
				log.Printf("lattice reload failed, keeping previous graph: %v", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// Reload re-parses the watched file and swaps the server's snapshot. On
// failure the server keeps serving the previous lattice.
func (w *Watcher) Reload() error {
	g, err := lattice.ParseLatticeFile(w.path, w.transform)
	if err != nil {
		return err
	}

	_, _, nonwords := w.server.Lattice()
	w.server.SetLattice(w.path, g, nonwords)
	return nil
}
