// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// watcher.go reloads a content file when it changes on disk. The directory
// is watched rather than the file because editors often replace the file
// (write to temp, rename) instead of writing it in place.
package content

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher is a Provider backed by a file that is re-read on change. A
// reload that fails to parse or validate keeps the previous content.
type Watcher struct {
	path     string
	pages    []string
	onReload func(*Site)

	current atomic.Pointer[Site]
	fs      *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watch loads path, validates it against pages, and starts watching for
// changes. onReload (may be nil) runs after every successful reload.
func Watch(path string, pages []string, onReload func(*Site)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("content watch: %w", err)
	}

	w := &Watcher{
		path:     abs,
		pages:    pages,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	if err := w.Reload(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content watch: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("content watch %s: %w", filepath.Dir(abs), err)
	}
	w.fs = fsw

	w.wg.Add(1)
	go w.loop()

	slog.Info("content watcher started", "path", abs)
	return w, nil
}

// Site returns the most recently loaded content.
func (w *Watcher) Site() *Site {
	return w.current.Load()
}

// Reload re-reads the file now. On error the current content is kept.
func (w *Watcher) Reload() error {
	site, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	if err := site.Validate(w.pages); err != nil {
		return fmt.Errorf("content %s: %w", w.path, err)
	}
	w.current.Store(site)
	return nil
}

// Close stops watching. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				slog.Warn("content reload failed, keeping previous content", "path", w.path, "error", err)
				continue
			}
			slog.Info("content reloaded", "path", w.path)
			if w.onReload != nil {
				w.onReload(w.Site())
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("content watcher error", "error", err)
		}
	}
}
