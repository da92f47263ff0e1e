package source

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a value file must stay quiet before a change
// is reported.
const DefaultDebounce = 500 * time.Millisecond

// debouncer coalesces bursts of events per key into one notification sent
// once the key has been quiet for interval.
type debouncer struct {
	interval time.Duration
	fired    chan string

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		fired:    make(chan string, 16),
		pending:  make(map[string]*time.Timer),
	}
}

// touch (re)starts the quiet period for key.
func (d *debouncer) touch(ctx context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		current, ok := d.pending[key]
		if ok && current == timer {
			delete(d.pending, key)
		}
		d.mu.Unlock()

		// A newer event replaced this timer.
		if !ok || current != timer {
			return
		}
		select {
		case d.fired <- key:
		case <-ctx.Done():
		}
	})
	d.pending[key] = timer
}

// stop cancels all pending timers.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, timer := range d.pending {
		timer.Stop()
	}
	d.pending = make(map[string]*time.Timer)
}

// WithDebounce sets how long a value file must stay unchanged before Watch
// reports it. Zero or less reports every event immediately.
func (s *DirSource) WithDebounce(d time.Duration) *DirSource {
	s.debounce = d
	return s
}

// Watch monitors the source directory and calls onChange with the key of
// every file that is written or created, once writes to it have settled.
// onChange runs on the calling goroutine. Watch runs until ctx is cancelled.
func (s *DirSource) Watch(ctx context.Context, logger *zap.Logger, onChange func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	logger.Info("Watching value directory",
		zap.String("dir", s.dir),
		zap.Duration("debounce", s.debounce),
	)

	d := newDebouncer(s.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case key := <-d.fired:
			onChange(key)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so creates count as writes.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			key := filepath.Base(event.Name)
			if validKey(key) != nil || key[0] == '.' {
				continue
			}
			if s.debounce <= 0 {
				onChange(key)
				continue
			}
			d.touch(ctx, key)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}
