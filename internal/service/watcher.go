package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ─────────────────────────────────────────────────────────────
// DocumentWatcher — reloads the session from a document file
// ─────────────────────────────────────────────────────────────

// DefaultDebounce is how long the watcher waits after the last write before
// reloading. Editors often save in several writes.
const DefaultDebounce = 500 * time.Millisecond

// DocumentWatcher updates a Session whenever its document file changes.
type DocumentWatcher struct {
	path     string
	session  *Session
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	reloads chan error
}

// NewDocumentWatcher creates a watcher for path. A non-positive debounce
// uses DefaultDebounce.
func NewDocumentWatcher(path string, session *Session, debounce time.Duration) *DocumentWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DocumentWatcher{path: path, session: session, debounce: debounce}
}

// Reloads returns a channel that receives the result of each reload after
// Start. Sends never block; results are dropped when nobody is receiving.
func (w *DocumentWatcher) Reloads() <-chan error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reloads == nil {
		w.reloads = make(chan error, 8)
	}
	return w.reloads
}

// Start begins watching. The directory is watched rather than the file so
// that editors replacing the file on save are still noticed.
func (w *DocumentWatcher) Start(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("document watcher: bad path %q: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("document watcher: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("document watcher: watch dir: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	w.mu.Lock()
	w.watcher = watcher
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	go w.loop(watchCtx, watcher, absPath, done)
	log.Printf("document watcher: watching %s", absPath)
	return nil
}

func (w *DocumentWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, absPath string, done chan struct{}) {
	defer close(done)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if p, _ := filepath.Abs(event.Name); p != absPath {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("document watcher: error: %v", err)
		}
	}
}

func (w *DocumentWatcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	doc, err := LoadDocumentFile(w.path)
	if err == nil {
		err = w.session.Update(ctx, "reload", doc)
	}
	if err != nil {
		log.Printf("document watcher: reload %s failed: %v", w.path, err)
	} else {
		log.Printf("document watcher: reloaded %s", w.path)
	}

	w.mu.Lock()
	ch := w.reloads
	w.mu.Unlock()
	if ch != nil {
		select {
		case ch <- err:
		default:
		}
	}
}

// Stop tears down the watcher and waits for its goroutine to exit.
func (w *DocumentWatcher) Stop() {
	w.mu.Lock()
	cancel, watcher, done := w.cancel, w.watcher, w.done
	w.cancel, w.watcher, w.done = nil, nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if watcher != nil {
		watcher.Close()
	}
	if done != nil {
		<-done
	}
}
