package registry

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of file events into one reload
const DefaultDebounce = 250 * time.Millisecond

// Watcher reseeds the registry when the manifest directory changes
type Watcher struct {
	seeder   *Seeder
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *logging.Logger
	onReload func(error)
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithReloadHook is called after every reload attempt with its result
func WithReloadHook(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher watches the seeder's manifest directory and its subdirectories
func NewWatcher(seeder *Seeder, opts ...WatcherOption) (*Watcher, error) {
	if seeder.Dir() == "" {
		return nil, fmt.Errorf("watcher requires a manifest directory")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		seeder:   seeder,
		fsw:      fsw,
		debounce: DefaultDebounce,
		logger:   seeder.logger.Named("watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(seeder.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes file events until ctx is cancelled or Close is called
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("Failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			w.reload(ctx)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) reload(ctx context.Context) {
	err := w.seeder.Seed(ctx)
	if err != nil {
		w.logger.Error("Catalogue reload failed, keeping previous catalogue", zap.Error(err))
	} else {
		w.logger.Info("Catalogue reloaded", zap.String("dir", w.seeder.Dir()))
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

func (w *Watcher) addTree(root string) error {
	conf := fastwalk.Config{Follow: false}
	return fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
		}
		return nil
	})
}
