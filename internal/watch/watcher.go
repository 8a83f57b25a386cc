// Package watch monitors Minecraft saves directories for changes so the UI
// can refresh the world list when worlds are created or deleted outside the
// tool.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a set of saves directories and emits a single debounced
// notification per burst of filesystem events.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	dirs     []string
	log      *zap.Logger
	debounce time.Duration
	changes  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a watcher over the given directories. Directories that cannot
// be watched are logged and skipped.
func New(dirs []string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fs:       fsw,
		dirs:     dirs,
		log:      log,
		debounce: 500 * time.Millisecond,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes returns the notification channel. At most one notification is
// pending at any time; a receive means "the saves directories changed,
// rescan".
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. Non-blocking; events are coalesced until debounce
// expires with no further activity.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := w.fs.Add(dir); err != nil {
			w.log.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	// The loop is the only sender, so it owns closing the channel;
	// receivers treat a closed channel as "watcher stopped".
	defer close(w.changes)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// World saves touch many files per change; only the
			// debounced edge matters.
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-timerC:
			timerC = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already pending.
			}
		}
	}
}

// Stop stops the watcher and releases the underlying fsnotify resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false

	close(w.stopCh)
	_ = w.fs.Close()
	<-w.doneCh
}
