package out

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// CatalogWatcher reports changes to the catalog file. It watches the parent
// directory so editors that replace the file on save are still seen.
type CatalogWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewCatalogWatcher(path string, logger *zap.Logger) *CatalogWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogWatcher{path: filepath.Clean(path), debounce: defaultDebounce, logger: logger.Named("catalog_watcher")}
}

// Start begins watching. changes receives one value per settled burst of
// events and is never closed by the watcher; sends are dropped while a
// previous notification is still pending.
func (w *CatalogWatcher) Start(ctx context.Context, changes chan<- struct{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch catalog dir: %w", err)
	}
	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.run(ctx, watcher, changes, w.stopCh, w.doneCh)
	w.logger.Debug("watching resource catalog", zap.String("path", w.path))
	return nil
}

// Stop ends the watch and waits for the event loop to exit.
func (w *CatalogWatcher) Stop() {
	w.mu.Lock()
	if w.watcher == nil {
		w.mu.Unlock()
		return
	}
	watcher, stopCh, doneCh := w.watcher, w.stopCh, w.doneCh
	w.watcher = nil
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	if err := watcher.Close(); err != nil {
		w.logger.Warn("close catalog watcher", zap.Error(err))
	}
}

func (w *CatalogWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}
}
