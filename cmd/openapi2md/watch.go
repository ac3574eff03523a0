// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// runWatch renders once, then re-renders whenever the input or template file
// changes, until ctx is done. Render errors while watching are logged only.
func (runner *cliRunner) runWatch(ctx context.Context, request convertRequest, debounce time.Duration) error {
	if err := runner.runConvert(ctx, request); err != nil {
		return err
	}

	files := []string{request.input}
	if request.templatePath != "" {
		files = append(files, request.templatePath)
	}

	return watchFiles(ctx, files, debounce, func() {
		if err := runner.runConvert(ctx, request); err != nil {
			slog.Error("render failed", "input", request.input, "error", err)
			return
		}

		slog.Info("rendered", "input", request.input, "output", request.output)
	})
}

// watchFiles calls onChange once per burst of writes to any of files.
//
// Parent directories are watched instead of the files so editors that
// replace a file on save are still observed.
func watchFiles(ctx context.Context, files []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	targets := make([]string, 0, len(files))
	for _, file := range files {
		absolute, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolve watched path %q: %w", file, err)
		}

		targets = append(targets, absolute)
		dir := filepath.Dir(absolute)
		if slices.Contains(watcher.WatchList(), dir) {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %q: %w", dir, err)
		}
	}

	slog.Info("watching for changes", "files", targets, "debounce", debounce)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !slices.Contains(targets, filepath.Clean(event.Name)) {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			slog.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.Warn("watch event queue overflowed", "error", err)
				pending = time.After(debounce)
				continue
			}

			slog.Error("watch error", "error", err)
		case <-pending:
			pending = nil
			onChange()
		}
	}
}
