package stations

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/logging"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reports changes to a stations file.
type Watcher struct {
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for path. A non-positive debounce uses the default.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce}
}

// Watch starts watching and returns a channel that receives one value per
// settled burst of changes. The channel is closed once ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// replace the file on save keep triggering events.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Debug("watching stations file", zap.String("path", w.path))

	changes := make(chan struct{}, 1)
	go w.run(ctx, fw, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer func() { _ = fw.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logging.Debug("stations file event", zap.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logging.Warn("stations watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			default:
				// a change is already pending
			}
		}
	}
}
