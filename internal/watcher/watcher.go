package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/atikulmunna/hitcount/internal/log"
	"github.com/fsnotify/fsnotify"
)

const (
	reconnectAttempts = 5
	reconnectDelay    = time.Second
)

// Event reports that a watched file has new content to analyze.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors a fixed set of log files for changes.
type Watcher struct {
	fsw       *fsnotify.Watcher
	Events    chan Event
	paths     map[string]string // absolute path -> path as given
	rewatched chan string
}

// New watches every path. Unlike glob expansion, a path that cannot be
// watched is an error.
func New(paths []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:       fsw,
		Events:    make(chan Event, 256),
		paths:     make(map[string]string, len(paths)),
		rewatched: make(chan string),
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if err := fsw.Add(abs); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}
		w.paths[abs] = p
	}

	return w, nil
}

// Start forwards file events until ctx is cancelled. Events carry the path
// as it was passed to New.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			given, known := w.paths[ev.Name]
			if !known {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0, ev.Op&fsnotify.Create != 0:
				w.emit(ctx, Event{Path: given, Op: ev.Op})
			case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
				// Rotated or replaced; the watch is gone with the old inode.
				go w.reconnect(ctx, ev.Name)
			}
		case abs := <-w.rewatched:
			w.emit(ctx, Event{Path: w.paths[abs], Op: fsnotify.Create})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case w.Events <- ev:
	case <-ctx.Done():
	}
}

// reconnect polls for a rotated file to reappear and watches it again.
func (w *Watcher) reconnect(ctx context.Context, abs string) {
	for i := 0; i < reconnectAttempts; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := w.fsw.Add(abs); err != nil {
			log.Warnf("cannot re-watch %s: %v", abs, err)
			return
		}
		log.Infof("re-watching rotated file %s", abs)
		select {
		case w.rewatched <- abs:
		case <-ctx.Done():
		}
		return
	}
	log.Warnf("gave up on %s after %d attempts", abs, reconnectAttempts)
}

// Paths returns the watched paths as they were given, sorted.
func (w *Watcher) Paths() []string {
	paths := make([]string, 0, len(w.paths))
	for _, p := range w.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
