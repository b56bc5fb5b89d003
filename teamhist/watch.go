// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long a file must be quiet before a change is acted
// on. Editors tend to write files in several steps.
const settle = 200 * time.Millisecond

// watchPaths returns the files and directories whose changes affect
// j's output.
func (j *job) watchPaths() []string {
	var paths []string
	for _, in := range j.inputs {
		if in != "-" {
			paths = append(paths, in)
		}
	}
	if j.configPath != "" {
		paths = append(paths, j.configPath)
	}
	if j.cfg.Logo.Dir != "" {
		paths = append(paths, j.cfg.Logo.Dir)
	}
	return paths
}

// watchTargets returns the directories to watch for paths and the
// set of cleaned names that count as changes. Directories are watched
// instead of files so replacing a file is noticed.
func watchTargets(paths []string) (dirs []string, names map[string]bool) {
	names = make(map[string]bool)
	seen := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		dir := filepath.Dir(p)
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			dir = p
		}
		names[p] = true
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, names
}

// relevant reports whether the event on name affects one of names,
// either directly or because name is inside a watched directory.
func relevant(names map[string]bool, name string) bool {
	name = filepath.Clean(name)
	return names[name] || names[filepath.Dir(name)]
}

// watchFiles calls onChange each time one of paths changes, until ctx
// is done.
func watchFiles(ctx context.Context, paths []string, onChange func()) error {
	if len(paths) == 0 {
		return errors.New("nothing to watch: inputs are read from stdin")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, names := watchTargets(paths)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !relevant(names, event.Name) {
				continue
			}
			logger.Debug("file changed", zap.String("event", event.String()))
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			onChange()
		}
	}
}

// watchJob re-runs j each time its inputs change, until interrupted.
func watchJob(j *job) error {
	if j.out == "" {
		return errors.New("-watch needs -o or -http")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger.Info("watching for changes", zap.Strings("paths", j.watchPaths()))
	return watchFiles(ctx, j.watchPaths(), func() {
		if err := j.run(); err != nil {
			logger.Warn("redraw failed", zap.Error(err))
			return
		}
		logger.Info("redrew chart", zap.String("file", j.out))
	})
}
