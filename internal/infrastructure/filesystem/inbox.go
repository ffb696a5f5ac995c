package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod is how long a file must stay untouched before it is imported
const DefaultQuietPeriod = 250 * time.Millisecond

// ImportFunc receives the content of a file dropped into the inbox
type ImportFunc func(ctx context.Context, data []byte) error

// Inbox watches a directory and imports every JSON file written into it.
// Events for a path are coalesced until the path has been quiet for a
// while, and content equal to the last successful import is skipped.
type Inbox struct {
	dir      string
	importFn ImportFunc
	quiet    time.Duration
	logger   *slog.Logger

	lastImported []byte
}

// NewInbox creates a new inbox for dir
func NewInbox(dir string, importFn ImportFunc, logger *slog.Logger) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{dir: dir, importFn: importFn, quiet: DefaultQuietPeriod, logger: logger}
}

// Run watches the directory until ctx is cancelled. The ready channel, when
// not nil, is closed once the watcher is in place.
func (in *Inbox) Run(ctx context.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(in.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", in.dir, err)
	}
	in.logger.Info("watching inbox", "dir", in.dir)
	if ready != nil {
		close(ready)
	}

	done := make(chan struct{})
	defer close(done)

	settled := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			path := event.Name
			if timer, ok := timers[path]; ok {
				timer.Reset(in.quiet)
				continue
			}
			timers[path] = time.AfterFunc(in.quiet, func() {
				select {
				case settled <- path:
				case <-done:
				}
			})
		case path := <-settled:
			delete(timers, path)
			in.handle(ctx, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			in.logger.Warn("watcher error", "err", err)
		}
	}
}

func (in *Inbox) handle(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		in.logger.Warn("failed to read inbox file", "path", path, "err", err)
		return
	}
	if len(data) == 0 {
		// the writer has created the file but not filled it yet
		return
	}
	if in.lastImported != nil && bytes.Equal(data, in.lastImported) {
		in.logger.Debug("inbox file unchanged since last import", "path", path)
		return
	}
	if err := in.importFn(ctx, data); err != nil {
		in.logger.Error("inbox import failed", "path", path, "err", err)
		return
	}
	in.lastImported = data
	in.logger.Info("inbox import done", "path", path)
}
