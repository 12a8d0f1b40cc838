// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
//
// # Description
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temp file and renaming it are still seen. Each
// change is loaded and validated with Load; an invalid file is logged and
// skipped, and the callback only ever sees a valid config.
//
// # Thread Safety
//
// Start should only be called once. The callback runs on the Start goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback func(RomcalcConfig)
}

// NewWatcher creates a watcher for the config file at path.
//
// # Inputs
//
//   - path: config file path. The file need not exist yet, its directory must.
//   - callback: called with every successfully reloaded config.
//
// # Outputs
//
//   - *Watcher: ready to Start
//   - error: non-nil if the watch cannot be established
func NewWatcher(path string, callback func(RomcalcConfig)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &Watcher{
		path:     path,
		watcher:  watcher,
		callback: callback,
	}, nil
}

// Start blocks, delivering reloads until ctx is cancelled or Stop is called.
//
// # Example
//
//	w, _ := config.NewWatcher(path, apply)
//	go w.Start(ctx)
func (w *Watcher) Start(ctx context.Context) {
	slog.Debug("Started watching config file", "path", w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error", "error", err)

		case <-ctx.Done():
			slog.Debug("Config watcher stopping")
			return
		}
	}
}

// handleEvent reloads on writes and creates of the watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("Config reload skipped", "path", w.path, "error", err)
		return
	}

	slog.Info("Config file reloaded", "path", w.path)
	if w.callback != nil {
		w.callback(cfg)
	}
}

// Stop releases the watch. Safe to call multiple times.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
