package library

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// watchDebounce coalesces the burst of events editors emit per save.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the library whenever its file changes and hands the fresh
// store to onReload. It watches the containing directory rather than the
// file itself so atomic-rename saves keep working.
//
// Watch blocks until ctx is cancelled. Reload failures degrade to an empty
// store through FileStore.Load, never to an error.
func (s *FileStore) Watch(ctx context.Context, logger *log.Logger, onReload func(*template.Store)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return err
	}

	base := filepath.Base(s.path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	debounce := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-fire:
			logger.Info("library changed, reloading", "path", s.path)
			onReload(s.LoadStore())
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("library watch error", "err", err)
		}
	}
}
