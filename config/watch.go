package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hupe1980/roundtable/logging"
)

const defaultDebounce = 100 * time.Millisecond

// WatcherOptions tunes a Watcher.
type WatcherOptions struct {
	// Debounce coalesces bursts of file events (editors often write twice).
	Debounce time.Duration
	Logger   logging.Logger
}

// Watcher reloads a configuration file whenever it changes on disk and hands
// the freshly validated Config to a callback. Invalid intermediate states are
// logged and skipped.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onChange func(*Config)
	debounce time.Duration
	logger   logging.Logger
}

// NewWatcher starts watching the directory that contains path. The watch is
// registered before NewWatcher returns; call Run to process events.
func NewWatcher(path string, onChange func(*Config), optFns ...func(o *WatcherOptions)) (*Watcher, error) {
	opts := WatcherOptions{Debounce: defaultDebounce, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	// Watching the directory survives editors that replace the file via rename.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	return &Watcher{
		path:     abs,
		fsw:      fsw,
		onChange: onChange,
		debounce: opts.Debounce,
		logger:   logging.OrNoOp(opts.Logger),
	}, nil
}

// Run processes file events until ctx is done. It always closes the
// underlying fsnotify watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config.reload.error", "path", w.path, "error", err.Error())
				continue
			}
			w.logger.Info("config.reload", "path", w.path)
			w.onChange(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config.watch.error", "path", w.path, "error", err.Error())
		}
	}
}
