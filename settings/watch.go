package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Update is one reload of a watched settings file. Err is set when the
// file changed but could not be loaded; Data is nil in that case.
type Update struct {
	Data *Data
	Err  error
}

// Watch reloads path whenever it is written, created or renamed into
// place and delivers the result on the returned channel. The directory is
// watched rather than the file so editors that replace the file on save
// keep working. The channel is closed when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := FormatForPath(abs); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	updates := make(chan Update, 1)
	go func() {
		defer close(updates)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				d, err := Load(abs)
				if err != nil {
					// A rename away from abs leaves nothing to load; wait for the
					// replacement to be created.
					if event.Has(fsnotify.Rename) {
						continue
					}
					d = nil
				}
				select {
				case updates <- Update{Data: d, Err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case updates <- Update{Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return updates, nil
}
