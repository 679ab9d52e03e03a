package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must go without events before it is
// reported.
const DefaultSettle = 500 * time.Millisecond

// InboxWatcher reports text documents created or rewritten in a directory,
// once writes to them have stopped.
type InboxWatcher struct {
	// Settle is the quiet period before a path is emitted.
	Settle time.Duration

	watcher    *fsnotify.Watcher
	extensions []string
}

func NewInboxWatcher(extensions []string) (*InboxWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}
	return &InboxWatcher{Settle: DefaultSettle, watcher: w, extensions: extensions}, nil
}

// Watch emits file paths until ctx is done or the watcher is closed. A path
// is emitted once per burst of Create/Write events; one removed or renamed
// away before settling is dropped. Watcher errors go to onError when it is set.
func (w *InboxWatcher) Watch(ctx context.Context, dir string, onError func(error)) (<-chan string, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	interval := settle / 4
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}

	paths := make(chan string, 100)
	go func() {
		defer close(paths)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		pending := make(map[string]time.Time)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.accepts(event.Name) {
					continue
				}
				switch {
				case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
					pending[event.Name] = time.Now()
				case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
					delete(pending, event.Name)
				}
			case now := <-ticker.C:
				for name, last := range pending {
					if now.Sub(last) < settle {
						continue
					}
					delete(pending, name)
					select {
					case paths <- name:
					case <-ctx.Done():
						return
					}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return paths, nil
}

func (w *InboxWatcher) Close() error {
	return w.watcher.Close()
}

func (w *InboxWatcher) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
