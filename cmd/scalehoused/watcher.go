package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Mail extensions the inbox watcher picks up (lowercase, without '.').
var mailExts = map[string]struct{}{
	"html": {},
	"htm":  {},
	"eml":  {},
}

// failedSuffix marks mails that already failed conversion so the watcher
// never picks them up again.
const failedSuffix = ".failed"

// settleDelay coalesces the Create/Write burst a mail delivery produces. A
// path is handed to a worker only after its events have been quiet for this
// long, so a file still being written is not read half-finished.
const settleDelay = 500 * time.Millisecond

// watchInbox watches dir for incoming mail files and emits their paths.
// Files already present at startup are emitted first, so a daemon restart
// drains the backlog. The returned channel closes when ctx is done.
func watchInbox(ctx context.Context, log *zap.Logger, dir string) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	paths := make(chan string, 256)

	// Initial scan: queue the backlog before live events.
	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	backlog := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && wantMail(e.Name()) {
			backlog = append(backlog, filepath.Join(dir, e.Name()))
		}
	}

	go func() {
		defer close(paths)
		defer func() { _ = w.Close() }()

		for _, p := range backlog {
			select {
			case paths <- p:
			case <-ctx.Done():
				return
			}
		}

		// Pending paths wait out the settle delay before being emitted;
		// every further event on the inbox restarts the timer.
		pending := map[string]struct{}{}
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !wantMail(e.Name) {
					continue
				}
				pending[e.Name] = struct{}{}
				if timer == nil {
					timer = time.NewTimer(settleDelay)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(settleDelay)
				}
				timerC = timer.C
			case <-timerC:
				timerC = nil
				for p := range pending {
					delete(pending, p)
					select {
					case paths <- p:
					case <-ctx.Done():
						return
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.Error(err))
			}
		}
	}()

	return paths, nil
}

// wantMail reports whether the file name looks like an incoming mail.
func wantMail(name string) bool {
	if strings.HasSuffix(name, failedSuffix) {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	_, ok := mailExts[ext]
	return ok
}
