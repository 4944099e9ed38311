// internal/settings/watch.go
//
// File-change reload for config.yml.
//
// Watch hands the file to koanf's file provider, which watches the parent
// directory through fsnotify and fires on writes, creates, and renames onto
// the path.  Events are debounced: a reload runs once the file has been
// quiet for WatchDebounce, so an editor's truncate-then-write arrives as
// one change.
//
// Notes
// -----
//   • Watch reloads publish a Snapshot but never write config.yml.  An old
//     document is migrated on disk by the next Load or Reload instead.
//   • A failed reload is logged and the previous Snapshot stays current.
package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/providers/file"
)

// WatchDebounce is the quiet period Watch waits for before reloading.
const WatchDebounce = 250 * time.Millisecond

// Watch reloads on changes to config.yml until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.refresh(); err != nil {
			s.log.Warnw("settings reload rejected, keeping previous snapshot", "file", s.path, "err", err)
			return
		}
		s.log.Infow("settings reloaded", "file", s.path)
	}

	fp := file.Provider(s.path)
	err := fp.Watch(func(_ interface{}, err error) {
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Errorw("settings watch error", "file", s.path, "err", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if timer == nil {
			timer = time.AfterFunc(s.debounce, reload)
			return
		}
		timer.Reset(s.debounce)
	})
	if err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrIO, s.path, err)
	}
	s.log.Infow("watching settings", "file", s.path)

	<-ctx.Done()
	if err := fp.Unwatch(); err != nil {
		s.log.Debugw("settings unwatch", "file", s.path, "err", err)
	}
	mu.Lock()
	if timer != nil {
		timer.Stop()
	}
	mu.Unlock()
	return nil
}
