// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the reloaded config each time the given file is
// written or replaced, until the context is done. Reload errors are
// passed to fn with a nil config. The directory is watched rather than
// the file so that editors that save by renaming are seen.
func Watch(ctx context.Context, filename string, fn func(cfg *Config, err error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("config: reload", "file", filename, "op", event.Op)
			fn(Open(filename))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watch", "file", filename, "error", err)
		}
	}
}
