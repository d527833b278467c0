package skills

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/pkg/errors"
)

// DefaultDebounce is the quiet period before a change triggers a rebuild
const DefaultDebounce = 300 * time.Millisecond

// FileEvent represents a file system event relevant to skills
type FileEvent struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Watch calls onChange whenever a SKILL.md under roots is created, written,
// renamed or removed. Bursts of events are collapsed into one call after
// delay. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, roots []string, delay time.Duration, onChange func(context.Context, FileEvent)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addTree(ctx, watcher, root); err != nil {
			return err
		}
	}

	events := make(chan FileEvent)
	debounced := make(chan FileEvent, 1)
	go debounceFileEvents(ctx, events, debounced, delay)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if err := addTree(ctx, watcher, event.Name); err != nil {
					logger.G(ctx).WithError(err).WithField("path", event.Name).Debug("failed to watch new path")
				}
			}
			if !relevant(event) {
				continue
			}
			select {
			case events <- FileEvent{Path: event.Name, Op: event.Op, Time: time.Now()}:
			case <-ctx.Done():
				return nil
			}
		case event := <-debounced:
			logger.G(ctx).WithField("file", event.Path).WithField("operation", event.Op.String()).Debug("skill change detected")
			onChange(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Error("error watching skills")
		case <-ctx.Done():
			return nil
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != skillFileName {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// addTree watches dir and all of its subdirectories except ignored ones
func addTree(ctx context.Context, watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
			return filepath.SkipDir
		}
		logger.G(ctx).WithField("directory", path).Debug("adding directory to watcher")
		return watcher.Add(path)
	})
}

// debounceFileEvents forwards the last event of a burst once no new event
// arrived for delay. It never blocks on output.
func debounceFileEvents(ctx context.Context, input <-chan FileEvent, output chan<- FileEvent, delay time.Duration) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending FileEvent
	)

	for {
		select {
		case event, ok := <-input:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			pending = event
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(delay)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case output <- pending:
			default:
				// a rebuild is already queued
			}
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
